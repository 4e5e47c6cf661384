package api

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api")

	g.GET("/health", h.HandleHealth)

	g.POST("/novelties/process", h.HandleProcess)
	g.GET("/novelties", h.HandleListNovelties)
	g.GET("/novelties/export", h.HandleExport)
	g.GET("/novelties/summary", h.HandleSummary)

	g.POST("/session/reset", h.HandleReset)

	g.GET("/bitacora/export", h.HandleBitacoraExport)
	g.GET("/bitacora/stats", h.HandleBitacoraStats)
}
