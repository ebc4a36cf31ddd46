package services

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSampleApplications(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	apps := GenerateSampleApplications(SampleSize, now, rand.New(rand.NewPCG(1, 2)))

	assert.Len(t, apps, SampleSize)
	for _, app := range apps {
		assert.True(t, app.IsSample)
		assert.True(t, app.Status.Valid())
		assert.NotEmpty(t, app.Role)
		assert.NotEmpty(t, app.Company)
		assert.False(t, app.AppliedAt.After(now))
		assert.False(t, app.UpdatedAt.Before(app.AppliedAt))
		assert.False(t, app.UpdatedAt.After(now))
		assert.LessOrEqual(t, len(app.Tags), 2)
	}
}

func TestGenerateSampleApplications_Deterministic(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	a := GenerateSampleApplications(5, now, rand.New(rand.NewPCG(7, 7)))
	b := GenerateSampleApplications(5, now, rand.New(rand.NewPCG(7, 7)))

	assert.Equal(t, a, b)
}
