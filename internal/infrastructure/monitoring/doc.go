/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the
gateway, tracking HTTP requests, filesystem operations, and paths rejected
by the sandbox resolver.

# Features

- HTTP request metrics (latency, throughput, size)
- Operation metrics (count by outcome, duration)
- Rejected path counter
- Uptime gauge

Each Metrics value owns a private registry, so several servers can run in
one process.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
