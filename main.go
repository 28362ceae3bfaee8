package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"

	"userstore/internal/database"
	"userstore/internal/handlers"
	"userstore/internal/repositories"
	"userstore/internal/services"
	"userstore/pkg/rabbitmq"
)

// NewApp wires the full application: entity store, repositories, services and
// handlers. mqClient may be nil, in which case no order events are published.
func NewApp(databaseURL string, mqClient *rabbitmq.Client) (*fiber.App, error) {
	db, err := database.Open(databaseURL)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	addressRepo := repositories.NewGORMAddressRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// Services
	userService := services.NewUserService(db, userRepo)
	addressService := services.NewAddressService(db, addressRepo, userRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(db, orderRepo, userRepo, addressRepo, productRepo, mqClient)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	addressHandler := handlers.NewAddressHandler(addressService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")
	userHandler.RegisterRoutes(api)
	addressHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

func main() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "sqlite://userstore.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// RabbitMQ is optional; without a broker URL the app runs without event
	// publishing.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	app, err := NewApp(databaseURL, mqClient)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
