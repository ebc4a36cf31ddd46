package main

import (
	"context"
	"log"

	"alfredoptarigan/job-tracker/internal/config"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/services"
)

// Rebuilds the Qdrant insight index from the applications table. Run after
// changing the embedding model or when index jobs were dropped.
func main() {
	log.Println("🚀 Starting insight reindex...")

	cfg := config.Load()
	if !cfg.IndexEnabled() {
		log.Fatal("❌ QDRANT_URL and GEMINI_API_KEY must both be set")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	ctx := context.Background()

	gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	index, err := services.NewQdrantInsightIndex(
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
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	appRepo := repositories.NewApplicationRepository(db)

	successCount := 0
	failCount := 0

	err = appRepo.EachBatch(100, func(apps []models.Application) error {
		for i := range apps {
			app := &apps[i]
			if err := index.IndexApplication(ctx, app); err != nil {
				log.Printf("   ❌ %s (%s at %s): %v", app.ID, app.Role, app.Company, err)
				failCount++
				continue
			}
			successCount++
		}
		log.Printf("   ✅ %d applications indexed so far", successCount)
		return nil
	})
	if err != nil {
		log.Fatalf("❌ Reindex aborted: %v", err)
	}

	log.Printf("\n🎉 Reindex complete: %d succeeded, %d failed", successCount, failCount)
}
