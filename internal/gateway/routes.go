package gateway

import (
	"net/http"
)

// Op identifies a gateway operation
type Op string

const (
	OpInfo       Op = "info"
	OpMethods    Op = "methods"
	OpReadFile   Op = "readFile"
	OpReaddir    Op = "readdir"
	OpStat       Op = "stat"
	OpLstat      Op = "lstat"
	OpRealpath   Op = "realpath"
	OpReadlink   Op = "readlink"
	OpWriteFile  Op = "writeFile"
	OpAppendFile Op = "appendFile"
	OpCopyFile   Op = "copyFile"
	OpMkdir      Op = "mkdir"
	OpRmdir      Op = "rmdir"
	OpRm         Op = "rm"
	OpRename     Op = "rename"
	OpUnlink     Op = "unlink"
)

// RouteKey is the dispatch key
type RouteKey struct {
	Method string
	Path   string
}

// Route binds a key to an operation
type Route struct {
	RouteKey
	Op Op
}

var routeTable = []Route{
	{RouteKey{http.MethodGet, "/"}, OpInfo},
	{RouteKey{http.MethodGet, "/methods"}, OpMethods},
	{RouteKey{http.MethodGet, "/readFile"}, OpReadFile},
	{RouteKey{http.MethodGet, "/readdir"}, OpReaddir},
	{RouteKey{http.MethodGet, "/stat"}, OpStat},
	{RouteKey{http.MethodGet, "/lstat"}, OpLstat},
	{RouteKey{http.MethodGet, "/realpath"}, OpRealpath},
	{RouteKey{http.MethodGet, "/readlink"}, OpReadlink},
	{RouteKey{http.MethodPost, "/writeFile"}, OpWriteFile},
	{RouteKey{http.MethodPost, "/appendFile"}, OpAppendFile},
	{RouteKey{http.MethodPost, "/copyFile"}, OpCopyFile},
	{RouteKey{http.MethodPost, "/mkdir"}, OpMkdir},
	{RouteKey{http.MethodDelete, "/rmdir"}, OpRmdir},
	{RouteKey{http.MethodDelete, "/rm"}, OpRm},
	{RouteKey{http.MethodPut, "/rename"}, OpRename},
	{RouteKey{http.MethodDelete, "/unlink"}, OpUnlink},
}

var routeIndex = func() map[RouteKey]Op {
	m := make(map[RouteKey]Op, len(routeTable))
	for _, r := range routeTable {
		m[r.RouteKey] = r.Op
	}
	return m
}()

// Routes returns a copy of the route table
func Routes() []Route {
	out := make([]Route, len(routeTable))
	copy(out, routeTable)
	return out
}

// Lookup finds the operation for method and path
func Lookup(method, path string) (Op, bool) {
	op, ok := routeIndex[RouteKey{Method: method, Path: path}]
	return op, ok
}

// Methods lists the filesystem operations the gateway supports
func Methods() []string {
	out := make([]string, 0, len(routeTable))
	for _, r := range routeTable {
		if r.Op == OpInfo || r.Op == OpMethods {
			continue
		}
		out = append(out, string(r.Op))
	}
	return out
}
