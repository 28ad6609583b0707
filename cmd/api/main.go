package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"spendtrack/internal/config"
	"spendtrack/internal/database"
	"spendtrack/internal/docstore"
	"spendtrack/internal/handlers"
	"spendtrack/internal/identity"
	"spendtrack/internal/logger"
	"spendtrack/internal/middleware"
	"spendtrack/internal/services"
	"spendtrack/internal/validator"
)

// @title           Spendtrack API
// @version         1.0
// @description     Spendtrack is a personal expense diary: users record dated expenses against their own categories and review per-day totals.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Create database manager and bring the schema up to date
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Document store: database-backed by default, in-process for
	// throwaway runs
	var store docstore.Store
	switch appConfig.DocStoreDriver {
	case "memory":
		store = docstore.NewMemoryStore()
	default:
		store = docstore.NewGormStore(dbManager.DB())
	}

	// Initialize services
	userService := services.NewUserService(dbManager.DB())
	categoryService := services.NewCategoryService(store)
	expenseService := services.NewExpenseService(store)

	// Session broker: seed a user's default categories when they log in.
	// Listing categories re-runs the same guard just in time, so a failed
	// or skipped seeding here only delays the work.
	sessions := identity.NewBroker()
	unsubscribe := sessions.SubscribeSessionChanges(func(userID string, active bool) {
		if !active {
			return
		}
		go func() {
			if err := categoryService.EnsureDefaultsSeeded(context.Background(), userID); err != nil {
				log.Warnw("default category seeding failed", "user_id", userID, "error", err)
			}
		}()
	})
	defer unsubscribe()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessions)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, categoryService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and logout
	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	// Category routes
	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.AddCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/total", expenseHandler.TotalForDate)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	log.Infof("Starting Spendtrack backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
