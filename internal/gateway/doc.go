// Package gateway maps HTTP requests onto confined filesystem operations.
//
// The package is organized into:
//   - routes: the closed (method, path) table and the operation names
//   - decode/encoding: turning write/append request bodies into bytes
//   - operations: one handler per route, each making a single fsys call
//   - gateway: dispatch, error conversion, logging and metrics
//   - http: the gin adapter that builds a Request and renders a Response
//
// Every path parameter passes through the sandbox resolver before the
// filesystem is touched. A rejected path never produces I/O.
//
// Requests are independent. Two writers targeting the same file are not
// serialized; the last write wins at the OS level.
//
// Example Usage:
//
//	gw, err := gateway.New(gateway.Config{Root: "./sandbox"}, fsys.NewOS(), logger)
//	resp := gw.Dispatch(ctx, &gateway.Request{Method: "GET", Route: "/readFile", Query: q})
package gateway
