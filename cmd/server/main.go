package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/retailcore/backend/internal/application/catalog"
	"github.com/retailcore/backend/internal/application/entitlement"
	identityapp "github.com/retailcore/backend/internal/application/identity"
	"github.com/retailcore/backend/internal/infrastructure/auth"
	"github.com/retailcore/backend/internal/infrastructure/cache"
	"github.com/retailcore/backend/internal/infrastructure/config"
	"github.com/retailcore/backend/internal/infrastructure/logger"
	"github.com/retailcore/backend/internal/infrastructure/persistence"
	"github.com/retailcore/backend/internal/infrastructure/persistence/partition"
	"github.com/retailcore/backend/internal/interfaces/http/handler"
	"github.com/retailcore/backend/internal/interfaces/http/middleware"
	"github.com/retailcore/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting retailcore backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Entitlement cache: Redis when reachable, in-process otherwise. The
	// cache is advisory either way; a miss just recomputes from the plan
	// store.
	var entitlementCache cache.EntitlementCache
	redisCache, err := cache.NewRedisEntitlementCache(cfg.Redis)
	if err != nil {
		log.Warn("Redis unreachable, using in-memory entitlement cache", zap.Error(err))
		entitlementCache = cache.NewInMemoryEntitlementCache(cfg.Redis.EntitlementCacheTTL)
	} else {
		defer func() { _ = redisCache.Close() }()
		entitlementCache = redisCache
		log.Info("Redis connected successfully")
	}

	// Repositories and the per-tenant partition store
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	partitionStore := partition.NewStore(db.DB)

	// Entitlement core
	resolver := entitlement.NewResolver(tenantRepo, planRepo, log)
	featureService := entitlement.NewFeatureService(resolver, log)
	limitService := entitlement.NewLimitService(resolver, partitionStore, log)

	// Application services
	tenantService := identityapp.NewTenantService(tenantRepo, planRepo, partitionStore, entitlementCache, log)
	planService := identityapp.NewPlanService(planRepo, log)
	userService := identityapp.NewUserService(partitionStore, limitService, log)
	productService := catalogapp.NewProductService(partitionStore, limitService, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.Logger = log

	engine.Use(
		middleware.RequestID(),
		middleware.CORSWithConfig(corsConfig),
		logger.AccessLog(log),
		logger.Recovery(log),
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		middleware.TenantMiddlewareWithConfig(tenantConfig),
	)

	featureMW := middleware.FeatureMiddlewareConfig{
		Accessor: featureService,
		Cache:    entitlementCache,
		Logger:   log,
	}

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.SystemRoutes{Handler: handler.NewSystemHandler(db)}).
		Register(router.AuthRoutes{Handler: handler.NewAuthHandler(userService, jwtService)}).
		Register(router.TenantRoutes{Handler: handler.NewTenantHandler(tenantService)}).
		Register(router.PlanRoutes{Handler: handler.NewPlanHandler(planService)}).
		Register(router.EntitlementRoutes{Handler: handler.NewEntitlementHandler(featureService)}).
		Register(router.ProductRoutes{Handler: handler.NewProductHandler(productService), FeatureMW: featureMW}).
		Register(router.UserRoutes{Handler: handler.NewUserHandler(userService), FeatureMW: featureMW}).
		Register(router.CollaboratorRoutes{
			Sales:     handler.NewCollectionHandler(partitionStore, "sales"),
			Employees: handler.NewCollectionHandler(partitionStore, "employees"),
			Bills:     handler.NewCollectionHandler(partitionStore, "bills"),
			FeatureMW: featureMW,
		}).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
