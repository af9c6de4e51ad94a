// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"errors"
	"log"
	"strings"

	"crediwallet/internal/config"
	"crediwallet/internal/handlers"
	"crediwallet/internal/middleware"
	"crediwallet/internal/models"
	"crediwallet/internal/repositories"
	"crediwallet/internal/repositories/cache"
	"crediwallet/internal/services/auth"
	"crediwallet/internal/services/notification"
	"crediwallet/internal/services/statement"
	"crediwallet/internal/services/transfer"
	"crediwallet/internal/services/user"
	"crediwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheSvc *cache.Service) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, cacheSvc)
	ledgerRepo := repositories.NewLedgerRepository(db)
	txManager := repositories.NewTxManager(db, cacheSvc)

	// Event publisher is optional; without brokers events are logged only.
	var publisher notification.EventPublisher
	if brokers := config.GetEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher = notification.NewKafkaPublisher(strings.Split(brokers, ","))
	}
	notifier := notification.NewService(publisher)

	// Services
	engine := transfer.NewService(txManager, notifier)
	authService := auth.NewService(userRepo, notifier)
	userService := user.NewService(userRepo)

	generator, err := statement.NewTextGenerator(config.GetEnv("STATEMENT_DIR", "statements"))
	if err != nil {
		log.Fatalf("statement generator init: %v", err)
	}
	statementService := statement.NewService(userRepo, ledgerRepo, generator)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(engine, statementService, ledgerRepo, notifier)
	adminHandler := handlers.NewAdminHandler(userService)
	healthHandler := handlers.NewHealthHandler(db, cacheSvc)

	authMiddleware := middleware.NewAuthMiddleware(func(token string) (*models.UserClaims, error) {
		_, claims, err := utils.ParseToken(token)
		if err != nil {
			return nil, err
		}
		if claims == nil {
			return nil, errors.New("invalid token claims")
		}
		return claims, nil
	}, userRepo)

	// Health check at the root
	app.Get("/health", healthHandler.HealthCheck)

	// Public routes
	api := app.Group("/api")
	api.Post("/register", authHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// Authenticated routes
	authenticated := api.Group("/", authMiddleware.Handler)

	users := authenticated.Group("/users")
	users.Get("/me", userHandler.GetMe)
	users.Put("/me", userHandler.UpdateMe)
	users.Delete("/me", userHandler.DeleteMe)
	users.Get("/account/:accountNumber", userHandler.GetByAccountNumber)

	transactions := authenticated.Group("/transactions")
	transactions.Post("/", transactionHandler.CreateTransaction)
	transactions.Get("/", transactionHandler.GetTransactions)
	transactions.Post("/statement", transactionHandler.GenerateStatement)
	transactions.Get("/:id", transactionHandler.GetTransaction)

	// Admin routes
	admin := authenticated.Group("/admin", middleware.AdminAuthMiddleware)
	admin.Put("/block/:userId", adminHandler.BlockUser)
	admin.Put("/unblock/:userId", adminHandler.UnblockUser)
	admin.Put("/make-admin/:userId", adminHandler.MakeAdmin)
	admin.Put("/remove-admin/:userId", adminHandler.RemoveAdmin)
}
