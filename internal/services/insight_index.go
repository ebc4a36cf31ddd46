package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/job-tracker/internal/models"
)

// ErrIndexDisabled is returned by Search when no vector store is configured.
var ErrIndexDisabled = errors.New("insight search is not configured")

// InsightIndex keeps saved insights searchable by meaning. Every point is
// tagged with its owner and every search is filtered by owner.
type InsightIndex interface {
	InitCollection(ctx context.Context) error
	IndexApplication(ctx context.Context, app *models.Application) error
	DeleteApplication(ctx context.Context, ownerID, applicationID uuid.UUID) error
	Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]models.InsightSearchResult, error)
}

const (
	payloadOwnerID       = "owner_id"
	payloadApplicationID = "application_id"
	payloadRequestType   = "request_type"
	payloadText          = "text"
)

type qdrantInsightIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	embedder       Embedder
	chunker        TextChunker
}

func NewQdrantInsightIndex(urlStr, apiKey, collectionName string, embedder Embedder, chunker TextChunker) (InsightIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantInsightIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
		embedder:       embedder,
		chunker:        chunker,
	}, nil
}

func (q *qdrantInsightIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if !exists {
		err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: q.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     q.vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	}

	// Owner filtering runs on every search.
	fieldType := qdrant.FieldType_FieldTypeKeyword
	_, err = q.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: q.collectionName,
		FieldName:      payloadOwnerID,
		FieldType:      &fieldType,
	})
	if err != nil {
		return fmt.Errorf("failed to index %s payload: %w", payloadOwnerID, err)
	}

	return nil
}

// IndexApplication replaces all points of the application with fresh
// embeddings of its saved insights.
func (q *qdrantInsightIndex) IndexApplication(ctx context.Context, app *models.Application) error {
	if err := q.DeleteApplication(ctx, app.OwnerID, app.ID); err != nil {
		return err
	}

	var points []*qdrant.PointStruct
	for _, requestType := range models.RequestTypes {
		for _, response := range app.Responses(requestType) {
			for _, chunk := range q.chunker.Chunk(response) {
				embedding, err := q.embedder.GenerateEmbedding(ctx, chunk)
				if err != nil {
					return fmt.Errorf("failed to embed %s insight of %s: %w", requestType, app.ID, err)
				}

				points = append(points, &qdrant.PointStruct{
					Id:      qdrant.NewID(uuid.NewString()),
					Vectors: qdrant.NewVectors(embedding...),
					Payload: qdrant.NewValueMap(map[string]any{
						payloadOwnerID:       app.OwnerID.String(),
						payloadApplicationID: app.ID.String(),
						payloadRequestType:   string(requestType),
						payloadText:          chunk,
					}),
				})
			}
		}
	}

	if len(points) == 0 {
		return nil
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

func (q *qdrantInsightIndex) DeleteApplication(ctx context.Context, ownerID, applicationID uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch(payloadOwnerID, ownerID.String()),
						qdrant.NewMatch(payloadApplicationID, applicationID.String()),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete points of %s: %w", applicationID, err)
	}
	return nil
}

func (q *qdrantInsightIndex) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]models.InsightSearchResult, error) {
	embedding, err := q.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch(payloadOwnerID, ownerID.String()),
			},
		},
		Limit:       qdrant.PtrOf(uint64(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]models.InsightSearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, models.InsightSearchResult{
			ApplicationID: payloadString(point.Payload, payloadApplicationID),
			Type:          models.RequestType(payloadString(point.Payload, payloadRequestType)),
			Text:          payloadString(point.Payload, payloadText),
			Score:         point.Score,
		})
	}

	return results, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		return value.GetStringValue()
	}
	return ""
}

type nopInsightIndex struct{}

// NewNopInsightIndex is used when Qdrant or the embedding key is not configured.
func NewNopInsightIndex() InsightIndex {
	return nopInsightIndex{}
}

func (nopInsightIndex) InitCollection(context.Context) error { return nil }

func (nopInsightIndex) IndexApplication(context.Context, *models.Application) error { return nil }

func (nopInsightIndex) DeleteApplication(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (nopInsightIndex) Search(context.Context, uuid.UUID, string, int) ([]models.InsightSearchResult, error) {
	return nil, ErrIndexDisabled
}
