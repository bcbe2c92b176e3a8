package main

import (
	"github.com/faturaime/admin-api/internal/handler"
	"github.com/faturaime/admin-api/internal/middleware"
	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/internal/prefstore"
	"github.com/faturaime/admin-api/pkg/config"
	"github.com/faturaime/admin-api/pkg/database"
	"github.com/faturaime/admin-api/pkg/jwtutil"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/faturaime/admin-api/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting admin API...", cfg.LogConfig()...)

	// Initialize database
	if _, err := database.InitDB(&cfg.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Run migrations
	if err := database.MigrateModels(
		&model.Tenant{},
		&model.User{},
		&model.Business{},
		&model.Article{},
		&model.Tax{},
		&model.Invoice{},
		&model.InvoiceLine{},
		&model.Invitation{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize the preference store over Redis. Backend failures degrade
	// to in-memory behavior inside the store, so startup does not block on
	// Redis availability.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	handler.InitPreferences(prefstore.New(prefstore.NewRedisKV(redisClient), log))
	handler.InitUserHandler(&cfg.Auth)
	log.Info("Preference store initialized", zap.String("redis_addr", cfg.Redis.Addr))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.GET("/api/nav/title", handler.PageTitle)

	// Authentication routes, rate limited per client IP
	authLimiter := middleware.NewRateLimiter(cfg.Auth.RateLimitPerSecond, cfg.Auth.RateLimitBurst)
	auth := e.Group("/auth", authLimiter.Middleware())
	auth.POST("/login", handler.Login)
	auth.POST("/signup", handler.Signup)
	auth.POST("/verify-email", handler.VerifyEmail)
	auth.POST("/accept-invitation", handler.AcceptInvitation)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Profile and view-mode preferences
	api.GET("/profile", handler.GetProfile)
	api.GET("/preferences/view-mode/:collection", handler.GetViewMode)
	api.PUT("/preferences/view-mode/:collection", handler.SetViewMode)

	// Resolved business scope and its dependent summary
	api.GET("/context", handler.GetContext)

	// User management - mutations require the user-level admin role
	users := api.Group("/users")
	users.GET("", handler.ListUsers)
	users.GET("/:id", handler.GetUser)
	users.POST("/invite", handler.InviteUser, middleware.RequireAdminRole)
	users.PATCH("/:id/roles", handler.UpdateUserRoles, middleware.RequireAdminRole)
	users.DELETE("/:id", handler.DeleteUser, middleware.RequireAdminRole)

	// Tenant management - listing requires administrative tenant scope
	tenants := api.Group("/tenants")
	tenants.GET("", handler.ListTenants, middleware.RequireTenantAdmin)
	tenants.GET("/:id", handler.GetTenant)
	tenants.PUT("/issuer-business", handler.SetIssuerBusiness, middleware.RequireAdminRole)

	// Business management
	businesses := api.Group("/businesses")
	businesses.GET("", handler.ListBusinesses)
	businesses.POST("", handler.CreateBusiness, middleware.RequireAdminRole)
	businesses.GET("/:business_id", handler.GetBusiness)
	businesses.PATCH("/:business_id", handler.UpdateBusiness, middleware.RequireAdminRole)
	businesses.DELETE("/:business_id", handler.DeleteBusiness, middleware.RequireAdminRole)

	// Articles, both business-nested and scope-resolved
	articles := api.Group("/articles")
	articles.GET("", handler.ListArticles)
	articles.POST("", handler.CreateArticle, middleware.RequireAdminRole)
	articles.GET("/:id", handler.GetArticle)
	articles.PATCH("/:id", handler.UpdateArticle, middleware.RequireAdminRole)
	articles.DELETE("/:id", handler.DeleteArticle, middleware.RequireAdminRole)
	businesses.GET("/:business_id/articles", handler.ListArticles)
	businesses.POST("/:business_id/articles", handler.CreateArticle, middleware.RequireAdminRole)

	// Tax configuration
	taxes := api.Group("/taxes")
	taxes.GET("", handler.ListTaxes)
	taxes.POST("", handler.CreateTax, middleware.RequireAdminRole)
	taxes.PATCH("/:id", handler.UpdateTax, middleware.RequireAdminRole)
	taxes.DELETE("/:id", handler.DeleteTax, middleware.RequireAdminRole)

	// Invoices, nested under the business that issues them
	invoices := businesses.Group("/:business_id/invoices")
	invoices.GET("", handler.ListInvoices)
	invoices.POST("", handler.CreateInvoice)
	invoices.GET("/:invoice_id", handler.GetInvoice)
	invoices.PATCH("/:invoice_id", handler.UpdateInvoice)
	invoices.DELETE("/:invoice_id", handler.DeleteInvoice)

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
