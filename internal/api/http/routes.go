package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the health check and the JSON API
func RegisterRoutes(r gin.IRouter, h *Handlers) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/state", h.State)

		api.POST("/decode", h.Decode)
		api.POST("/encode", h.Encode)

		api.PUT("/input", h.SetInput)
		api.DELETE("/input", h.ClearInput)

		api.GET("/editor", h.GetEditor)
		api.PUT("/editor", h.PutEditor)

		api.POST("/search", h.Search)
		api.POST("/search/next", h.FindNext)
		api.POST("/search/prev", h.FindPrev)
		api.POST("/replace", h.Replace)

		api.GET("/history", h.History)
		api.DELETE("/history", h.ClearHistory)
		api.POST("/history/:index/restore", h.RestoreHistory)

		api.GET("/export", h.Export)
	}
}
