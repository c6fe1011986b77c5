package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"autohub-api/internal/core/auth"
	"autohub-api/internal/core/config"
	"autohub-api/internal/transport/http/handler"
	mdw "autohub-api/internal/transport/http/middleware"
	resp "autohub-api/internal/transport/http/response"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Health   *handler.HealthHandler
}

// NewAPIEngine wires the storefront surface: public catalog reads, auth,
// and token-guarded cart/order routes.
func NewAPIEngine(l *zap.Logger, cfg *config.Config, jwter *auth.JWTer, h Handlers) *gin.Engine {
	r := newEngine(l, cfg)

	r.GET("/health", h.Health.Check)

	// credential endpoints get a tighter per-client bucket
	login := r.Group("", mdw.RateLimitPerIP(5, 10))
	login.POST("/auth/register", h.Auth.Register)
	login.POST("/auth/login", h.Auth.Login)
	login.POST("/auth/google", h.Auth.Google)
	login.POST("/admin/login", h.Auth.AdminLogin)

	r.GET("/products", h.Product.Get)
	r.GET("/categories", h.Category.Get)

	// catalog writes need the admin role
	adminOnly := r.Group("", mdw.AuthJWT(jwter, "admin"))
	adminOnly.POST("/products", h.Product.Create)
	adminOnly.PUT("/products", h.Product.Update)
	adminOnly.DELETE("/products", h.Product.Delete)
	adminOnly.POST("/categories", h.Category.Create)
	adminOnly.PUT("/categories", h.Category.Update)
	adminOnly.DELETE("/categories", h.Category.Delete)

	authed := r.Group("", mdw.AuthJWT(jwter, ""))
	authed.GET("/cart", h.Cart.Get)
	authed.POST("/cart", h.Cart.Add)
	authed.PUT("/cart", h.Cart.UpdateQuantity)
	authed.DELETE("/cart", h.Cart.Delete)
	authed.GET("/orders", h.Order.Get)
	authed.POST("/orders", h.Order.Create)
	authed.PUT("/orders", h.Order.UpdateStatus)

	return r
}

func newEngine(l *zap.Logger, cfg *config.Config) *gin.Engine {
	r := gin.New()
	// last-resort net: panics escaping SimpleRecovery still get logged
	r.Use(ginzap.RecoveryWithZap(l, true))
	r.Use(
		mdw.RequestID(),
		mdw.CORS(cfg.CORS.AllowOrigins),
		mdw.RateLimit(rate.Limit(cfg.Limits.RateRPS), cfg.Limits.RateBurst),
		mdw.ConcurrencyLimit(cfg.Limits.MaxInFlight),
		mdw.MaxBodyBytes(cfg.Limits.MaxBodyBytes),
		mdw.Timeout(time.Duration(cfg.Limits.TimeoutSec)*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		resp.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		resp.Fail(c, http.StatusNotFound, "not found")
	})
	return r
}
