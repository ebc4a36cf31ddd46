package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

// InsightInput is everything needed to produce one insight. It is never stored.
type InsightInput struct {
	JobSpec     string
	ResumeName  string
	RequestType models.RequestType
}

type InsightService interface {
	GenerateInsight(ctx context.Context, userID uuid.UUID, input InsightInput) (string, error)
	GenerateForApplication(ctx context.Context, userID, applicationID uuid.UUID, requestType models.RequestType) (string, error)
}

type insightService struct {
	userRepo      repositories.UserRepository
	appRepo       repositories.ApplicationRepository
	pdfParser     PDFParserService
	completion    CompletionClient
	promptBuilder *PromptBuilder
}

func NewInsightService(
	userRepo repositories.UserRepository,
	appRepo repositories.ApplicationRepository,
	pdfParser PDFParserService,
	completion CompletionClient,
) InsightService {
	return &insightService{
		userRepo:      userRepo,
		appRepo:       appRepo,
		pdfParser:     pdfParser,
		completion:    completion,
		promptBuilder: NewPromptBuilder(),
	}
}

// GenerateInsight implements InsightService. Nothing is persisted; saving the
// returned text is a separate call.
func (s *insightService) GenerateInsight(ctx context.Context, userID uuid.UUID, input InsightInput) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	if len(user.Resumes) == 0 {
		return "", &models.UserNotFoundError{UserID: userID.String()}
	}

	resume, ok := user.FindResume(input.ResumeName)
	if !ok {
		return "", &models.ResumeNotFoundError{Name: input.ResumeName}
	}

	specText, err := s.pdfParser.ExtractText(input.JobSpec)
	if err != nil {
		return "", err
	}

	resumeText, err := s.pdfParser.ExtractText(resume.Content)
	if err != nil {
		return "", err
	}

	prompt, err := s.promptBuilder.BuildInsightPrompt(input.RequestType, specText, resumeText)
	if err != nil {
		return "", err
	}

	log.Printf("🤖 Generating %s insight for user %s\n", input.RequestType, userID)

	text, err := s.completion.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		log.Printf("❌ %s insight failed for user %s: %v\n", input.RequestType, userID, err)
		return "", err
	}

	return text, nil
}

// GenerateForApplication implements InsightService. A record without a job
// spec fails at extraction, after the user and resume lookups.
func (s *insightService) GenerateForApplication(ctx context.Context, userID, applicationID uuid.UUID, requestType models.RequestType) (string, error) {
	app, err := s.appRepo.FindByID(userID, applicationID)
	if err != nil {
		return "", err
	}

	return s.GenerateInsight(ctx, userID, InsightInput{
		JobSpec:     app.JobSpec,
		ResumeName:  app.ResumeName,
		RequestType: requestType,
	})
}
