package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/job-tracker/internal/config"
	"alfredoptarigan/job-tracker/internal/handlers"
	"alfredoptarigan/job-tracker/internal/middleware"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	ctx := context.Background()

	// Gemini is needed for completions when selected, and for embeddings
	// whenever the insight index is on.
	var gemini services.GeminiService
	if cfg.LLM.Provider == config.ProviderGemini || cfg.IndexEnabled() {
		gemini, err = services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	}

	var completion services.CompletionClient
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		completion = gemini
	default:
		completion = services.NewOpenAIClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout)
	}
	completion = services.NewRetryingClient(completion, cfg.LLM.MaxAttempts, cfg.LLM.RetryDelay)
	log.Printf("✅ Completion provider: %s\n", cfg.LLM.Provider)

	index := services.NewNopInsightIndex()
	var queue services.IndexQueue = services.NewNopIndexQueue()
	var worker services.Worker

	if cfg.IndexEnabled() {
		index, err = services.NewQdrantInsightIndex(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			gemini,
			services.NewTextChunker(1000, 200),
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := index.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")

		worker = services.NewWorker(appRepo, index, cfg.Worker.Concurrency, cfg.Worker.QueueSize)
		worker.Start(ctx)
		queue = worker
	} else {
		log.Println("⚠️  QDRANT_URL or GEMINI_API_KEY not set, insight search disabled")
	}

	appService := services.NewApplicationService(appRepo, queue)
	insightService := services.NewInsightService(userRepo, appRepo, services.NewPDFParserService(), completion)
	log.Println("✅ Services initialized successfully")

	app := fiber.New(fiber.Config{
		AppName: "Job Tracker API",
		// insight generation waits on the model
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.Timeout*time.Duration(cfg.LLM.MaxAttempts) + 30*time.Second,
		BodyLimit:    cfg.BodyLimit(),
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.UserIDHeader,
	}))

	handlers.RegisterRoutes(app.Group("/api/v1"), &handlers.Handlers{
		Applications: handlers.NewApplicationHandler(appService),
		Insights:     handlers.NewInsightHandler(insightService, appService, index),
		Profiles:     handlers.NewProfileHandler(services.NewProfileService(userRepo, cfg.Storage.MaxResumes)),
		Documents:    handlers.NewDocumentHandler(services.NewDocumentService(cfg.Storage.MaxFileSize)),
		Metrics:      handlers.NewMetricsHandler(services.NewMetricsService(appRepo)),
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Job Tracker API",
			"version": "1.0.0",
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("❌ Failed to listen on %s: %v", addr, err)
	}
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := serve(app, ln, quit, worker); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	log.Println("✅ Server stopped")
}

// serve runs app until quit fires. It returns only after in-flight requests
// have finished and the index worker, if any, has drained its queue.
func serve(app *fiber.App, ln net.Listener, quit <-chan os.Signal, worker services.Worker) error {
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	if err := app.Listener(ln); err != nil {
		return err
	}

	// Listener returns as soon as the socket closes, before Shutdown is done.
	<-shutdownDone
	if worker != nil {
		worker.Stop()
	}
	return nil
}
