package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"autohub-api/internal/core/auth"
	"autohub-api/internal/core/config"
	mdw "autohub-api/internal/transport/http/middleware"
)

// NewAdminEngine wires the back-office surface on its own listener:
// admin login, catalog and order management, plus /metrics for scraping.
func NewAdminEngine(l *zap.Logger, cfg *config.Config, jwter *auth.JWTer, h Handlers) *gin.Engine {
	r := newEngine(l, cfg)

	r.GET("/health", h.Health.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/admin/login", mdw.RateLimitPerIP(5, 10), h.Auth.AdminLogin)

	g := r.Group("", mdw.AuthJWT(jwter, "admin"))
	g.GET("/products", h.Product.Get)
	g.POST("/products", h.Product.Create)
	g.PUT("/products", h.Product.Update)
	g.DELETE("/products", h.Product.Delete)
	g.GET("/categories", h.Category.Get)
	g.POST("/categories", h.Category.Create)
	g.PUT("/categories", h.Category.Update)
	g.DELETE("/categories", h.Category.Delete)
	g.GET("/orders", h.Order.Get)
	g.PUT("/orders", h.Order.UpdateStatus)

	return r
}
