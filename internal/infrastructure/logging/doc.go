// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components take a named child logger so log lines can be filtered by
// origin (gateway, http, static).
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	gw, err := gateway.New(cfg, fsys.NewOS(), logger.Component("gateway"))
//	logger.Info("Server starting", zap.String("addr", addr))
package logging
