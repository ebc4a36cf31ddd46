package services

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"google.golang.org/genai"

	"alfredoptarigan/job-tracker/internal/models"
)

const providerGemini = "gemini"

// maxEmbeddingInput keeps embedding requests under the model's token limit.
const maxEmbeddingInput = 40000

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// GeminiService serves both as a completion provider and as the embedder for
// the insight index.
type GeminiService interface {
	CompletionClient
	Embedder
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(ctx context.Context, apiKey, model, embedModel string) (GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  model,
		embedModel: embedModel,
	}, nil
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateUTF8(text, maxEmbeddingInput)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// truncateUTF8 cuts text to at most n bytes without splitting a rune.
func truncateUTF8(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

// Complete implements CompletionClient.
func (g *geminiService) Complete(ctx context.Context, system, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   MaxCompletionTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", &models.CompletionTransportError{Provider: providerGemini, Err: err}
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", &models.NoCompletionChoiceError{Provider: providerGemini, Body: "no candidates"}
	}

	text := resp.Text()
	if text == "" {
		return "", &models.NoCompletionChoiceError{
			Provider: providerGemini,
			Body:     fmt.Sprintf("finish reason: %s", resp.Candidates[0].FinishReason),
		}
	}

	return text, nil
}
