package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

type ProfileService interface {
	CreateUser(req *models.CreateUserRequest) (*models.User, error)
	Get(userID uuid.UUID) (*models.ProfileResponse, error)
	Update(userID uuid.UUID, req *models.ProfileRequest) (*models.ProfileResponse, error)
	ResumeNames(userID uuid.UUID) ([]string, error)
}

type profileService struct {
	userRepo   repositories.UserRepository
	maxResumes int
}

// NewProfileService caps each profile at maxResumes resumes. The HTTP body
// limit is sized from the same value.
func NewProfileService(userRepo repositories.UserRepository, maxResumes int) ProfileService {
	return &profileService{userRepo: userRepo, maxResumes: maxResumes}
}

func (s *profileService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *profileService) Get(userID uuid.UUID) (*models.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

// Update saves the whole profile at once, resumes included.
func (s *profileService) Update(userID uuid.UUID, req *models.ProfileRequest) (*models.ProfileResponse, error) {
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if len(req.Resumes) > s.maxResumes {
		return nil, &models.ValidationError{Field: "resumes", Message: fmt.Sprintf("must not exceed %d entries", s.maxResumes)}
	}

	seen := make(map[string]struct{}, len(req.Resumes))
	for i, resume := range req.Resumes {
		name := strings.TrimSpace(resume.Name)
		if name == "" {
			return nil, &models.ValidationError{Field: "resumes", Message: "must all have a name"}
		}
		if _, dup := seen[name]; dup {
			return nil, &models.ValidationError{Field: "resumes", Message: "contains duplicate name " + name}
		}
		if resume.Content == "" {
			return nil, &models.ValidationError{Field: "resumes", Message: "has no content for " + name}
		}
		seen[name] = struct{}{}
		req.Resumes[i].Name = name
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = email

	affected, err := s.userRepo.UpdateProfile(userID, req)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, &models.UserNotFoundError{UserID: userID.String()}
	}

	return s.Get(userID)
}

func (s *profileService) ResumeNames(userID uuid.UUID) ([]string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return user.ResumeNames(), nil
}

func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", &models.ValidationError{Field: "email", Message: "is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", &models.ValidationError{Field: "email", Message: "is not a valid address"}
	}
	return email, nil
}

func toProfileResponse(user *models.User) *models.ProfileResponse {
	return &models.ProfileResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		Resumes: user.ResumeNames(),
	}
}
