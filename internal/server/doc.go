// Package server provides HTTP server setup for the filesystem gateway.
//
// The server mounts the gateway under the configured API prefix and owns
// the paths around it:
//   - PREFIX/*route: every method is handed to the gateway adapter
//   - /healthz: liveness and the resolved sandbox root
//   - /metrics: Prometheus exposition from a per-server registry
//   - /metrics/json: counter snapshot as JSON
//   - anything else: 404 in api mode, static files in static mode
//
// Middleware stack: recovery, request id, access log, metrics, CORS and an
// optional per-client rate limit.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg, logging.NewDefault())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
