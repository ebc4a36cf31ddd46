package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

func newApplicationService(t *testing.T) (ApplicationService, *recordingQueue) {
	t.Helper()
	queue := &recordingQueue{}
	return NewApplicationService(repositories.NewApplicationRepository(newTestDB(t)), queue), queue
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newApplicationService(t)
	owner := uuid.New()

	app, err := svc.Create(owner, &models.CreateApplicationRequest{
		Role:    "  Backend Engineer ",
		Company: "Acme",
		Tags:    []string{"remote", " remote", "", "go"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", app.Role)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, owner, app.OwnerID)
	assert.False(t, app.AppliedAt.IsZero())
	assert.Equal(t, []string{"remote", "go"}, []string(app.Tags))
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newApplicationService(t)

	tests := []struct {
		name  string
		req   models.CreateApplicationRequest
		field string
	}{
		{name: "missing role", req: models.CreateApplicationRequest{Company: "Acme"}, field: "role"},
		{name: "missing company", req: models.CreateApplicationRequest{Role: "SRE"}, field: "company"},
		{name: "bad status", req: models.CreateApplicationRequest{Role: "SRE", Company: "Acme", Status: "Ghosted"}, field: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(uuid.New(), &tt.req)
			var validation *models.ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestUpdate_OtherOwnerAffectsNothing(t *testing.T) {
	svc, _ := newApplicationService(t)
	alice, bob := uuid.New(), uuid.New()
	app, err := svc.Create(alice, &models.CreateApplicationRequest{Role: "SRE", Company: "Acme"})
	require.NoError(t, err)

	status := models.StatusOffered
	affected, err := svc.Update(bob, app.ID, &models.ApplicationUpdate{Status: &status})
	require.NoError(t, err)
	assert.Zero(t, affected)

	got, err := svc.Get(alice, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, got.Status)

	list, err := svc.List(bob, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdate_RejectsBlankAndInvalid(t *testing.T) {
	svc, _ := newApplicationService(t)
	owner := uuid.New()
	app, err := svc.Create(owner, &models.CreateApplicationRequest{Role: "SRE", Company: "Acme"})
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(owner, app.ID, &models.ApplicationUpdate{Role: &blank})
	var validation *models.ValidationError
	assert.True(t, errors.As(err, &validation))

	status := models.ApplicationStatus("Ghosted")
	_, err = svc.Update(owner, app.ID, &models.ApplicationUpdate{Status: &status})
	assert.True(t, errors.As(err, &validation))
}

func TestBoard_FiveOrderedColumnsFavoritesFirst(t *testing.T) {
	svc, _ := newApplicationService(t)
	owner := uuid.New()

	_, err := svc.Create(owner, &models.CreateApplicationRequest{Role: "A", Company: "Acme", Status: models.StatusInterviewing})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	fav, err := svc.Create(owner, &models.CreateApplicationRequest{Role: "B", Company: "Globex", Status: models.StatusInterviewing, IsFavorite: true})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Create(owner, &models.CreateApplicationRequest{Role: "C", Company: "Initech", Status: models.StatusInterviewing})
	require.NoError(t, err)
	_, err = svc.Create(owner, &models.CreateApplicationRequest{Role: "D", Company: "Hooli", Status: models.StatusOffered})
	require.NoError(t, err)

	board, err := svc.Board(owner)
	require.NoError(t, err)
	require.Len(t, board, 5)
	for i, status := range models.Statuses {
		assert.Equal(t, status, board[i].Status)
	}

	interviewing := board[2].Applications
	require.Len(t, interviewing, 3)
	assert.Equal(t, fav.ID, interviewing[0].ID)
	assert.Equal(t, "C", interviewing[1].Role)
	assert.Equal(t, "A", interviewing[2].Role)
	assert.Len(t, board[3].Applications, 1)
	assert.NotNil(t, board[0].Applications)
}

func TestSaveInsight_Validation(t *testing.T) {
	svc, queue := newApplicationService(t)
	owner := uuid.New()
	app, err := svc.Create(owner, &models.CreateApplicationRequest{Role: "SRE", Company: "Acme"})
	require.NoError(t, err)

	_, err = svc.SaveInsight(owner, app.ID, "salary", "text")
	var invalid *models.InvalidRequestTypeError
	assert.True(t, errors.As(err, &invalid))

	_, err = svc.SaveInsight(owner, app.ID, models.RequestTips, "   ")
	var validation *models.ValidationError
	assert.True(t, errors.As(err, &validation))

	_, err = svc.SaveInsight(uuid.New(), app.ID, models.RequestTips, "text")
	var notFound *models.ApplicationNotFoundError
	assert.True(t, errors.As(err, &notFound))

	assert.Empty(t, queue.Jobs())
}

func TestDelete_EnqueuesRemoval(t *testing.T) {
	svc, queue := newApplicationService(t)
	owner := uuid.New()
	app, err := svc.Create(owner, &models.CreateApplicationRequest{Role: "SRE", Company: "Acme"})
	require.NoError(t, err)

	affected, err := svc.Delete(uuid.New(), app.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.Empty(t, queue.Jobs())

	affected, err = svc.Delete(owner, app.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, []IndexJob{{OwnerID: owner, ApplicationID: app.ID, Removed: true}}, queue.Jobs())
}

func TestSampleData_ScopedToCaller(t *testing.T) {
	svc, _ := newApplicationService(t)
	alice, bob := uuid.New(), uuid.New()

	kept, err := svc.Create(alice, &models.CreateApplicationRequest{Role: "SRE", Company: "Acme"})
	require.NoError(t, err)

	inserted, err := svc.InsertSampleData(alice)
	require.NoError(t, err)
	assert.Equal(t, SampleSize, inserted)

	_, err = svc.InsertSampleData(bob)
	require.NoError(t, err)

	cleared, err := svc.ClearSampleData(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(SampleSize), cleared)

	remaining, err := svc.List(alice, "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	bobs, err := svc.List(bob, "")
	require.NoError(t, err)
	assert.Len(t, bobs, SampleSize)
}
