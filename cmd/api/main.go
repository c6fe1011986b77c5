package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"autohub-api/internal/core/auth"
	"autohub-api/internal/core/cache"
	"autohub-api/internal/core/config"
	"autohub-api/internal/core/database"
	"autohub-api/internal/core/logger"
	"autohub-api/internal/core/server"
	"autohub-api/internal/domain"
	"autohub-api/internal/repo"
	"autohub-api/internal/service"
	"autohub-api/internal/transport/http/handler"
	"autohub-api/internal/transport/http/router"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Admin{},
			&domain.Category{}, &domain.Product{},
			&domain.ProductImage{}, &domain.ProductSpecification{},
			&domain.CartItem{},
			&domain.Order{}, &domain.OrderItem{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	h := buildHandlers(db, c, cfg, jwter)
	r := router.NewAPIEngine(log, cfg, jwter, h)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("storefront api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("storefront api start FAILED", zap.Error(err))
		}
	}()
	log.Info("storefront api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("storefront api stopped gracefully")
}

func buildHandlers(db *gorm.DB, c *cache.Cache, cfg *config.Config, jwter *auth.JWTer) router.Handlers {
	users := repo.NewUserRepo(db)
	admins := repo.NewAdminRepo(db)
	categories := repo.NewCategoryRepo(db)
	products := repo.NewProductRepo(db)
	carts := repo.NewCartRepo(db)
	orders := repo.NewOrderRepo(db)

	featuredTTL := time.Duration(cfg.Redis.FeaturedTTLSec) * time.Second
	authSvc := service.NewAuthService(users, admins, jwter)
	catalogSvc := service.NewCatalogService(products, categories, c, featuredTTL)
	cartSvc := service.NewCartService(carts, products)
	orderSvc := service.NewOrderService(orders)

	return router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Product:  handler.NewProductHandler(catalogSvc),
		Category: handler.NewCategoryHandler(catalogSvc),
		Cart:     handler.NewCartHandler(cartSvc),
		Order:    handler.NewOrderHandler(orderSvc),
		Health:   handler.NewHealthHandler(db, cfg.App.Env, version),
	}
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
