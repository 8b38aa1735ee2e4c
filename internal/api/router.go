package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chamathdew/hiruayurvedaresorts/internal/api/handler"
	"github.com/chamathdew/hiruayurvedaresorts/internal/api/middleware"
	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
	"github.com/chamathdew/hiruayurvedaresorts/internal/core/ports"
	"github.com/chamathdew/hiruayurvedaresorts/internal/core/service"
	"github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/config"
	mongodb "github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/db/mongo"
	redisdb "github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/db/redis"
	"github.com/chamathdew/hiruayurvedaresorts/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb and extractor may be nil; the stats cache and extraction endpoint then
// degrade gracefully (no cache, 503 on extract).
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, extractor ports.DocumentExtractor, store handler.FileStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("hiru"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)

	guestRepo := mongodb.NewGuestRepository(db)
	var statsCache service.StatsCache
	if rdb != nil {
		statsCache = redisdb.NewStatsCache(rdb)
	}
	guestService := service.NewGuestService(guestRepo, statsCache, logger.Get())
	guestHandler := handler.NewGuestHandler(guestService, extractor, store)

	auth := middleware.Auth(cfg.JWTSecret)
	writers := middleware.RBAC(domain.RoleAdmin, domain.RoleFrontOffice)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)

	// --- Guest routes ---
	g := e.Group("/guests", auth)
	g.GET("", guestHandler.List)
	g.GET("/stats", guestHandler.Stats)
	g.GET("/:id", guestHandler.Get)
	g.POST("", guestHandler.Create, writers)
	g.PUT("/:id", guestHandler.Update, writers)
	g.DELETE("/:id", guestHandler.Delete, adminOnly)
	g.POST("/extract", guestHandler.Extract)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
