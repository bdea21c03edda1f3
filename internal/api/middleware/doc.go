// Package middleware provides the gin middleware stack used by the server:
// CORS, per-client rate limiting, request ids and access logging.
package middleware
