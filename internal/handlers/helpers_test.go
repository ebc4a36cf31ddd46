package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/job-tracker/internal/config"
	"alfredoptarigan/job-tracker/internal/middleware"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/services"
)

type stubCompletion struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (s *stubCompletion) Complete(context.Context, string, string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type testServer struct {
	app        *fiber.App
	completion *stubCompletion
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tracker.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	completion := &stubCompletion{text: "T"}
	index := services.NewNopInsightIndex()
	appService := services.NewApplicationService(appRepo, services.NewNopIndexQueue())

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app.Group("/api/v1"), &Handlers{
		Applications: NewApplicationHandler(appService),
		Insights:     NewInsightHandler(services.NewInsightService(userRepo, appRepo, services.NewPDFParserService(), completion), appService, index),
		Profiles:     NewProfileHandler(services.NewProfileService(userRepo, 5)),
		Documents:    NewDocumentHandler(services.NewDocumentService(1 << 20)),
		Metrics:      NewMetricsHandler(services.NewMetricsService(appRepo)),
	})

	return &testServer{app: app, completion: completion}
}

// do sends a JSON request as userID (uuid.Nil sends no identity) and decodes
// the response into out when it is not nil.
func (s *testServer) do(t *testing.T, method, path string, userID uuid.UUID, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set(middleware.UserIDHeader, userID.String())
	}

	return s.send(t, req, out)
}

func (s *testServer) send(t *testing.T, req *http.Request, out any) int {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func fixturePDF(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "job_spec.pdf"))
	require.NoError(t, err)
	return data
}

func fixtureDataURL(t *testing.T) string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(fixturePDF(t))
}

type errorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
