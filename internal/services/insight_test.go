package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

type insightFixture struct {
	users      repositories.UserRepository
	apps       repositories.ApplicationRepository
	completion *fakeCompletion
	service    InsightService
}

func newInsightFixture(t *testing.T, completionText string) *insightFixture {
	t.Helper()
	db := newTestDB(t)
	f := &insightFixture{
		users:      repositories.NewUserRepository(db),
		apps:       repositories.NewApplicationRepository(db),
		completion: &fakeCompletion{text: completionText},
	}
	f.service = NewInsightService(f.users, f.apps, NewPDFParserService(), f.completion)
	return f
}

func (f *insightFixture) createUser(t *testing.T, resumes ...models.Resume) uuid.UUID {
	t.Helper()
	user := &models.User{Name: "Ada", Email: uuid.NewString() + "@example.com", Resumes: resumes}
	require.NoError(t, f.users.Create(user))
	return user.ID
}

func TestGenerateInsight_ReturnsCompletionText(t *testing.T) {
	f := newInsightFixture(t, "You are a strong match.")
	pdf := fixturePDF(t)
	userID := f.createUser(t, models.Resume{Name: "resume.pdf", Content: pdf})

	text, err := f.service.GenerateInsight(context.Background(), userID, InsightInput{
		JobSpec:     pdf,
		ResumeName:  "resume.pdf",
		RequestType: models.RequestSuitability,
	})

	require.NoError(t, err)
	assert.Equal(t, "You are a strong match.", text)
	require.Equal(t, 1, f.completion.Calls())
	assert.Contains(t, f.completion.prompts[0], fixtureText)
}

func TestGenerateInsight_ResumeNotFoundBeforeAnyCompletion(t *testing.T) {
	f := newInsightFixture(t, "unused")
	userID := f.createUser(t, models.Resume{Name: "other.pdf", Content: fixturePDF(t)})

	_, err := f.service.GenerateInsight(context.Background(), userID, InsightInput{
		JobSpec:     fixturePDF(t),
		ResumeName:  "resume.pdf",
		RequestType: models.RequestTips,
	})

	var notFound *models.ResumeNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "resume.pdf", notFound.Name)
	assert.Zero(t, f.completion.Calls())
}

func TestGenerateInsight_UserWithoutResumes(t *testing.T) {
	f := newInsightFixture(t, "unused")
	userID := f.createUser(t)

	_, err := f.service.GenerateInsight(context.Background(), userID, InsightInput{
		JobSpec:     fixturePDF(t),
		ResumeName:  "resume.pdf",
		RequestType: models.RequestTips,
	})

	var notFound *models.UserNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Zero(t, f.completion.Calls())
}

func TestGenerateInsight_UnknownUser(t *testing.T) {
	f := newInsightFixture(t, "unused")

	_, err := f.service.GenerateInsight(context.Background(), uuid.New(), InsightInput{
		JobSpec:     fixturePDF(t),
		ResumeName:  "resume.pdf",
		RequestType: models.RequestTips,
	})

	var notFound *models.UserNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestGenerateInsight_ExtractionErrorPropagates(t *testing.T) {
	f := newInsightFixture(t, "unused")
	userID := f.createUser(t, models.Resume{Name: "resume.pdf", Content: fixturePDF(t)})

	_, err := f.service.GenerateInsight(context.Background(), userID, InsightInput{
		JobSpec:     "",
		ResumeName:  "resume.pdf",
		RequestType: models.RequestMockInterview,
	})

	assert.True(t, IsExtractionError(err))
	assert.Zero(t, f.completion.Calls())
}

func TestGenerateInsight_InvalidRequestType(t *testing.T) {
	f := newInsightFixture(t, "unused")
	pdf := fixturePDF(t)
	userID := f.createUser(t, models.Resume{Name: "resume.pdf", Content: pdf})

	_, err := f.service.GenerateInsight(context.Background(), userID, InsightInput{
		JobSpec:     pdf,
		ResumeName:  "resume.pdf",
		RequestType: "salary",
	})

	var invalid *models.InvalidRequestTypeError
	assert.True(t, errors.As(err, &invalid))
	assert.Zero(t, f.completion.Calls())
}

func TestGenerateInsight_CompletionErrorPropagates(t *testing.T) {
	f := newInsightFixture(t, "")
	f.completion.errs = []error{&models.NoCompletionChoiceError{Provider: "test", Body: "{}"}}
	pdf := fixturePDF(t)
	userID := f.createUser(t, models.Resume{Name: "resume.pdf", Content: pdf})

	_, err := f.service.GenerateInsight(context.Background(), userID, InsightInput{
		JobSpec:     pdf,
		ResumeName:  "resume.pdf",
		RequestType: models.RequestTips,
	})

	var noChoice *models.NoCompletionChoiceError
	assert.True(t, errors.As(err, &noChoice))
}

func TestGenerateForApplication_OtherOwnerIsNotFound(t *testing.T) {
	f := newInsightFixture(t, "unused")
	pdf := fixturePDF(t)
	alice := f.createUser(t, models.Resume{Name: "resume.pdf", Content: pdf})
	bob := f.createUser(t, models.Resume{Name: "resume.pdf", Content: pdf})

	app := &models.Application{Role: "SRE", Company: "Acme", Status: models.StatusApplied, JobSpec: pdf, ResumeName: "resume.pdf"}
	require.NoError(t, f.apps.Create(alice, app))

	_, err := f.service.GenerateForApplication(context.Background(), bob, app.ID, models.RequestTips)

	var notFound *models.ApplicationNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Zero(t, f.completion.Calls())
}

func TestInsightLifecycle_GenerateSaveRemove(t *testing.T) {
	f := newInsightFixture(t, "T")
	pdf := fixturePDF(t)
	userID := f.createUser(t, models.Resume{Name: "resume.pdf", Content: pdf})

	app := &models.Application{Role: "Go Engineer", Company: "Acme", Status: models.StatusApplied, JobSpec: pdf, ResumeName: "resume.pdf"}
	require.NoError(t, f.apps.Create(userID, app))

	queue := &recordingQueue{}
	apps := NewApplicationService(f.apps, queue)

	text, err := f.service.GenerateForApplication(context.Background(), userID, app.ID, models.RequestSuitability)
	require.NoError(t, err)
	assert.Equal(t, "T", text)

	saved, err := apps.SaveInsight(userID, app.ID, models.RequestSuitability, text)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "T", saved[len(saved)-1])

	remaining, err := apps.RemoveInsight(userID, app.ID, models.RequestSuitability, 0)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	stored, err := f.apps.FindByID(userID, app.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.SuitabilityResponses)
	assert.Len(t, queue.Jobs(), 2)
}

func TestGenerateForApplication_MissingJobSpec(t *testing.T) {
	pdf := fixturePDF(t)

	t.Run("user lookup runs first", func(t *testing.T) {
		f := newInsightFixture(t, "unused")
		userID := f.createUser(t)
		app := &models.Application{Role: "SRE", Company: "Acme", Status: models.StatusApplied, ResumeName: "resume.pdf"}
		require.NoError(t, f.apps.Create(userID, app))

		_, err := f.service.GenerateForApplication(context.Background(), userID, app.ID, models.RequestTips)

		var notFound *models.UserNotFoundError
		assert.True(t, errors.As(err, &notFound), "got %T: %v", err, err)
		assert.Zero(t, f.completion.Calls())
	})

	t.Run("resume lookup runs before extraction", func(t *testing.T) {
		f := newInsightFixture(t, "unused")
		userID := f.createUser(t, models.Resume{Name: "other.pdf", Content: pdf})
		app := &models.Application{Role: "SRE", Company: "Acme", Status: models.StatusApplied, ResumeName: "resume.pdf"}
		require.NoError(t, f.apps.Create(userID, app))

		_, err := f.service.GenerateForApplication(context.Background(), userID, app.ID, models.RequestTips)

		var notFound *models.ResumeNotFoundError
		assert.True(t, errors.As(err, &notFound), "got %T: %v", err, err)
	})

	t.Run("empty spec is an extraction error", func(t *testing.T) {
		f := newInsightFixture(t, "unused")
		userID := f.createUser(t, models.Resume{Name: "resume.pdf", Content: pdf})
		app := &models.Application{Role: "SRE", Company: "Acme", Status: models.StatusApplied, ResumeName: "resume.pdf"}
		require.NoError(t, f.apps.Create(userID, app))

		_, err := f.service.GenerateForApplication(context.Background(), userID, app.ID, models.RequestTips)

		assert.True(t, IsExtractionError(err), "got %T: %v", err, err)
		assert.Zero(t, f.completion.Calls())
	})
}
