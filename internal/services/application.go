package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

// SampleSize is how many records InsertSampleData generates.
const SampleSize = 50

type ApplicationService interface {
	Create(ownerID uuid.UUID, req *models.CreateApplicationRequest) (*models.Application, error)
	Get(ownerID, id uuid.UUID) (*models.Application, error)
	List(ownerID uuid.UUID, status models.ApplicationStatus) ([]models.Application, error)
	Board(ownerID uuid.UUID) ([]models.BoardColumn, error)
	Update(ownerID, id uuid.UUID, update *models.ApplicationUpdate) (int64, error)
	Delete(ownerID, id uuid.UUID) (int64, error)
	SaveInsight(ownerID, id uuid.UUID, requestType models.RequestType, text string) ([]string, error)
	RemoveInsight(ownerID, id uuid.UUID, requestType models.RequestType, index int) ([]string, error)
	InsertSampleData(ownerID uuid.UUID) (int, error)
	ClearSampleData(ownerID uuid.UUID) (int64, error)
}

type applicationService struct {
	appRepo repositories.ApplicationRepository
	queue   IndexQueue
	now     func() time.Time
}

func NewApplicationService(appRepo repositories.ApplicationRepository, queue IndexQueue) ApplicationService {
	return &applicationService{
		appRepo: appRepo,
		queue:   queue,
		now:     time.Now,
	}
}

func (s *applicationService) Create(ownerID uuid.UUID, req *models.CreateApplicationRequest) (*models.Application, error) {
	role := strings.TrimSpace(req.Role)
	company := strings.TrimSpace(req.Company)
	if role == "" {
		return nil, &models.ValidationError{Field: "role", Message: "is required"}
	}
	if company == "" {
		return nil, &models.ValidationError{Field: "company", Message: "is required"}
	}

	status := req.Status
	if status == "" {
		status = models.StatusApplied
	}
	if !status.Valid() {
		return nil, invalidStatus(status)
	}

	now := s.now()
	appliedAt := now
	if req.AppliedAt != nil {
		appliedAt = *req.AppliedAt
	}

	app := &models.Application{
		Role:             role,
		Company:          company,
		Status:           status,
		AppliedAt:        appliedAt,
		InterviewDate:    req.InterviewDate,
		OfferDate:        req.OfferDate,
		UnsuccessfulDate: req.UnsuccessfulDate,
		JobSpec:          req.JobSpec,
		JobSpecName:      req.JobSpecName,
		ResumeName:       req.ResumeName,
		Tags:             normalizeTags(req.Tags),
		IsFavorite:       req.IsFavorite,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.appRepo.Create(ownerID, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Get(ownerID, id uuid.UUID) (*models.Application, error) {
	return s.appRepo.FindByID(ownerID, id)
}

func (s *applicationService) List(ownerID uuid.UUID, status models.ApplicationStatus) ([]models.Application, error) {
	if status != "" && !status.Valid() {
		return nil, invalidStatus(status)
	}
	return s.appRepo.ListByOwner(ownerID, status)
}

// Board groups the owner's records into the status columns. The repository
// ordering (favorites, then newest) is kept inside each column.
func (s *applicationService) Board(ownerID uuid.UUID) ([]models.BoardColumn, error) {
	apps, err := s.appRepo.ListByOwner(ownerID, "")
	if err != nil {
		return nil, err
	}

	columns := make([]models.BoardColumn, len(models.Statuses))
	position := make(map[models.ApplicationStatus]int, len(models.Statuses))
	for i, status := range models.Statuses {
		columns[i] = models.BoardColumn{Status: status, Applications: []models.Application{}}
		position[status] = i
	}

	for _, app := range apps {
		i, ok := position[app.Status]
		if !ok {
			continue
		}
		columns[i].Applications = append(columns[i].Applications, app)
	}

	return columns, nil
}

func (s *applicationService) Update(ownerID, id uuid.UUID, update *models.ApplicationUpdate) (int64, error) {
	if update.Role != nil {
		role := strings.TrimSpace(*update.Role)
		if role == "" {
			return 0, &models.ValidationError{Field: "role", Message: "must not be blank"}
		}
		update.Role = &role
	}
	if update.Company != nil {
		company := strings.TrimSpace(*update.Company)
		if company == "" {
			return 0, &models.ValidationError{Field: "company", Message: "must not be blank"}
		}
		update.Company = &company
	}
	if update.Status != nil && !update.Status.Valid() {
		return 0, invalidStatus(*update.Status)
	}
	if update.Tags != nil {
		tags := []string(normalizeTags(*update.Tags))
		update.Tags = &tags
	}

	return s.appRepo.Update(ownerID, id, update)
}

func (s *applicationService) Delete(ownerID, id uuid.UUID) (int64, error) {
	affected, err := s.appRepo.Delete(ownerID, id)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.queue.Enqueue(IndexJob{OwnerID: ownerID, ApplicationID: id, Removed: true})
	}
	return affected, nil
}

func (s *applicationService) SaveInsight(ownerID, id uuid.UUID, requestType models.RequestType, text string) ([]string, error) {
	if !requestType.Valid() {
		return nil, &models.InvalidRequestTypeError{Type: string(requestType)}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &models.ValidationError{Field: "text", Message: "must not be empty"}
	}

	responses, err := s.appRepo.AppendResponse(ownerID, id, requestType, text)
	if err != nil {
		return nil, err
	}

	s.queue.Enqueue(IndexJob{OwnerID: ownerID, ApplicationID: id})
	return responses, nil
}

func (s *applicationService) RemoveInsight(ownerID, id uuid.UUID, requestType models.RequestType, index int) ([]string, error) {
	if !requestType.Valid() {
		return nil, &models.InvalidRequestTypeError{Type: string(requestType)}
	}

	responses, err := s.appRepo.RemoveResponse(ownerID, id, requestType, index)
	if err != nil {
		return nil, err
	}

	s.queue.Enqueue(IndexJob{OwnerID: ownerID, ApplicationID: id})
	return responses, nil
}

func (s *applicationService) InsertSampleData(ownerID uuid.UUID) (int, error) {
	apps := GenerateSampleApplications(SampleSize, s.now(), nil)
	if err := s.appRepo.CreateMany(ownerID, apps); err != nil {
		return 0, err
	}
	return len(apps), nil
}

func (s *applicationService) ClearSampleData(ownerID uuid.UUID) (int64, error) {
	return s.appRepo.DeleteSamples(ownerID)
}

func invalidStatus(status models.ApplicationStatus) error {
	return &models.ValidationError{Field: "status", Message: "must be one of Not Applied, Applied, Interviewing, Offered, Unsuccessful; got " + string(status)}
}

// normalizeTags trims tags and drops blanks and duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
