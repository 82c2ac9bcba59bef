package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talenthq/succession-portal/internal/api/handler"
	"github.com/talenthq/succession-portal/internal/api/middleware"
	"github.com/talenthq/succession-portal/internal/core/domain"
	"github.com/talenthq/succession-portal/internal/core/ports"
	"github.com/talenthq/succession-portal/internal/core/service"
	"github.com/talenthq/succession-portal/internal/infrastructure/config"
	mongodb "github.com/talenthq/succession-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/talenthq/succession-portal/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The employee and admin stacks are assembled from the same pieces, driven
// by their role descriptors.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, hasher ports.PasswordHasher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("portal"))

	limiter := redisdb.NewLoginLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)

	roles := []domain.Role{
		domain.EmployeeRole(cfg.EmployeeJWTSecret),
		domain.AdminRole(cfg.AdminJWTSecret),
	}

	apiGroup := e.Group("/api")
	for _, role := range roles {
		repo := mongodb.NewCredentialRepository(db, role.Collection)
		authService := service.NewAuthService(role, repo, hasher, limiter, cfg.TokenTTL)
		authHandler := handler.NewAuthHandler(role, authService, cfg.TokenTTL, cfg.IsProduction())
		profileHandler := handler.NewProfileHandler(repo)

		g := apiGroup.Group("/" + role.Name)
		g.POST("/signup", authHandler.Signup)
		g.POST("/login", authHandler.Login)
		g.GET("/logout", authHandler.Logout)
		g.POST("/logout", authHandler.Logout)

		protected := g.Group("", middleware.Auth(role.Name, role.Secret), middleware.RBAC(role.Name))
		protected.GET("/me", profileHandler.Me)
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
