package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowAllOrigins bool
	AllowOrigins    []string
	AllowMethods    []string
	AllowHeaders    []string
	MaxAge          time.Duration
}

// DefaultCORSConfig permits any origin to call the gateway.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowAllOrigins: true,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}
}

// CORS creates a CORS middleware. Preflight requests are answered with a bare 200.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:           cfg.AllowAllOrigins,
		AllowOrigins:              cfg.AllowOrigins,
		AllowMethods:              cfg.AllowMethods,
		AllowHeaders:              cfg.AllowHeaders,
		MaxAge:                    cfg.MaxAge,
		OptionsResponseStatusCode: http.StatusOK,
	})
}
