// Package main is the entry point for the sandboxed filesystem gateway.
//
// The server exposes a confined directory over a small JSON HTTP API
// mounted under a path prefix. Every caller-supplied path is resolved
// against the sandbox root and rejected if it escapes.
//
// Configuration:
//   - Environment variables (PORT, HOST, FS_ROOT, API_PREFIX, FS_MODE,
//     STATIC_DIR, LOG_LEVEL, LOG_DEV, RATE_LIMIT_*)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Serve ./sandbox under /api on :5174
//	./server
//
//	# Custom root and prefix
//	./server --root /srv/files --prefix /fs
//
//	# Serve a built frontend next to the API, with console logs
//	./server --static ./dist --dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
