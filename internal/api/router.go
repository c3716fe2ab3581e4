package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/invoicer/internal/apperr"
	"github.com/mmynk/invoicer/internal/middleware"
)

// NewRouter wires the middleware chain and routes. All four invoice
// operations live on /invoices and are dispatched by verb.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		gin.CustomRecovery(func(c *gin.Context, _ any) {
			respondError(c, apperr.Store(nil, "Internal server error."))
		}),
	)

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		respondError(c, apperr.MethodNotAllowed("Method not allowed for this endpoint."))
	})
	r.NoRoute(func(c *gin.Context) {
		respondError(c, apperr.NotFound("Route not found."))
	})

	r.GET("/invoices", h.List)
	r.POST("/invoices", h.Create)
	r.PUT("/invoices", h.Update)
	r.DELETE("/invoices", h.Delete)

	r.GET("/healthz", func(c *gin.Context) {
		respondOK(c, "ok", nil)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
