package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AnyOrigin allows every origin; credentials are then never sent
const AnyOrigin = "*"

// CORSConfig selects which browser origins may drive the studio API.
type CORSConfig struct {
	Origins []string
	MaxAge  time.Duration
}

// DefaultCORSConfig opens the API to any origin.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		Origins: []string{AnyOrigin},
		MaxAge:  12 * time.Hour,
	}
}

// CORS answers preflights for the API verbs and exposes the headers clients read:
// the request ID and the export file name.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Accept", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:        cfg.MaxAge,
	}

	if len(cfg.Origins) == 0 || slices.Contains(cfg.Origins, AnyOrigin) {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.Origins
	}
	return cors.New(c)
}
