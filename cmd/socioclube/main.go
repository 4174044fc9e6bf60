package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/socioclube/portal/app/controllers"
	"github.com/socioclube/portal/app/repository"
	"github.com/socioclube/portal/internal/pkg/cache"
	"github.com/socioclube/portal/internal/pkg/certificates"
	"github.com/socioclube/portal/internal/pkg/database"
	"github.com/socioclube/portal/internal/pkg/env"
	"github.com/socioclube/portal/internal/pkg/jobqueue"
	"github.com/socioclube/portal/internal/pkg/router"
	"github.com/socioclube/portal/internal/pkg/storage"
)

func main() {
	app := NewApplication()

	go func() {
		addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "0.0.0.0"), env.GetEnv("APP_PORT", "3000"))
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	gracefulShutdown(app)
}

// NewApplication wires the database, cache, queue and HTTP surface together.
func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	// object storage (optional)
	var store *storage.Client
	storageCfg := storage.NewConfigFromEnv()
	if storageCfg.IsEnabled() {
		var err error
		store, err = storage.NewClient(storageCfg)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
	} else {
		log.Println("Object storage not configured, falling back to local files")
	}

	// background jobs
	queueClient := jobqueue.NewClient()
	controllers.SetJobQueue(queueClient)
	controllers.SetObjectStorage(store)

	generator := certificates.NewGenerator(env.GetEnv("ASSOCIATION_NAME", "SocioClube"))
	worker := jobqueue.NewWorker(generator, store, queueClient)
	go func() {
		if err := worker.Run(); err != nil {
			log.Fatalf("Could not start task worker: %v", err)
		}
	}()

	jobqueue.StartScheduler(queueClient)

	app := fiber.New(fiber.Config{
		AppName:   "SocioClube",
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(recover.New(), logger.New())

	router.InstallRouter(app)

	return app
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
