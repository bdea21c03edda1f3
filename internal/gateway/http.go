package gateway

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteParam is the wildcard parameter holding the path after the prefix
const RouteParam = "route"

// Handler serves the gateway under a "/*route" wildcard.
// The whole body is read before any operation runs.
func (g *Gateway) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			resp := errorResponse(fmt.Errorf("failed to read request body: %w", err))
			c.JSON(resp.Status, resp.Body)
			return
		}

		req := NewRequest(c.Request, c.Param(RouteParam), body)
		resp := g.Dispatch(c.Request.Context(), req)
		c.JSON(resp.Status, resp.Body)
	}
}

// NewRequest builds a gateway request from an HTTP request
func NewRequest(r *http.Request, route string, body []byte) *Request {
	if route == "" {
		route = "/"
	}

	query := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			query[key] = values[len(values)-1]
		}
	}

	return &Request{
		Method:      r.Method,
		Route:       route,
		Query:       query,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	}
}
