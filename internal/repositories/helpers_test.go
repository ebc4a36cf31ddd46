package repositories

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/job-tracker/internal/config"
	"alfredoptarigan/job-tracker/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tracker.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
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
	return db
}

func newApplication(role, company string) *models.Application {
	return &models.Application{
		Role:    role,
		Company: company,
		Status:  models.StatusApplied,
		Tags:    []string{},
	}
}

func mustCreate(t *testing.T, repo ApplicationRepository, ownerID uuid.UUID, role, company string) *models.Application {
	t.Helper()
	app := newApplication(role, company)
	require.NoError(t, repo.Create(ownerID, app))
	return app
}
