package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/job-tracker/internal/config"
)

const fixtureText = "Senior Go Engineer at Acme"

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// fixturePDF returns testdata/job_spec.pdf as a data URL.
func fixturePDF(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "job_spec.pdf"))
	require.NoError(t, err)
	return EncodeDocument(data)
}

type fakeCompletion struct {
	mu      sync.Mutex
	text    string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeCompletion) Complete(_ context.Context, _, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return f.text, nil
}

func (f *fakeCompletion) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []IndexJob
}

func (q *recordingQueue) Enqueue(job IndexJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
}

func (q *recordingQueue) Jobs() []IndexJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]IndexJob(nil), q.jobs...)
}
