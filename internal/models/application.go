package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	StatusNotApplied   ApplicationStatus = "Not Applied"
	StatusApplied      ApplicationStatus = "Applied"
	StatusInterviewing ApplicationStatus = "Interviewing"
	StatusOffered      ApplicationStatus = "Offered"
	StatusUnsuccessful ApplicationStatus = "Unsuccessful"
)

// Statuses lists the board columns in display order.
var Statuses = []ApplicationStatus{
	StatusNotApplied,
	StatusApplied,
	StatusInterviewing,
	StatusOffered,
	StatusUnsuccessful,
}

func (s ApplicationStatus) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

type Application struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Role             string            `gorm:"type:text;not null" json:"role"`
	Company          string            `gorm:"type:text;not null" json:"company"`
	Status           ApplicationStatus `gorm:"type:text;not null;default:'Applied'" json:"status"`
	AppliedAt        time.Time         `json:"applied_at"`
	InterviewDate    *time.Time        `json:"interview_date,omitempty"`
	OfferDate        *time.Time        `json:"offer_date,omitempty"`
	UnsuccessfulDate *time.Time        `json:"unsuccessful_date,omitempty"`
	JobSpec          string            `gorm:"type:text" json:"job_spec,omitempty"`
	JobSpecName      string            `gorm:"type:text" json:"job_spec_name,omitempty"`
	ResumeName       string            `gorm:"type:text" json:"resume_name,omitempty"`
	IsFavorite       bool              `gorm:"not null;default:false" json:"is_favorite"`
	IsSample         bool              `gorm:"not null;default:false;index" json:"is_sample"`

	Tags                   datatypes.JSONSlice[string] `json:"tags"`
	MockInterviewResponses datatypes.JSONSlice[string] `json:"mock_interview_responses"`
	SuitabilityResponses   datatypes.JSONSlice[string] `json:"suitability_responses"`
	TipsResponses          datatypes.JSONSlice[string] `json:"tips_responses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Responses returns the saved insight list for the given request type.
func (a *Application) Responses(t RequestType) []string {
	switch t {
	case RequestMockInterview:
		return a.MockInterviewResponses
	case RequestSuitability:
		return a.SuitabilityResponses
	case RequestTips:
		return a.TipsResponses
	}
	return nil
}

// ApplicationUpdate carries a partial update. Nil fields are left untouched.
type ApplicationUpdate struct {
	Role             *string            `json:"role"`
	Company          *string            `json:"company"`
	Status           *ApplicationStatus `json:"status"`
	AppliedAt        *time.Time         `json:"applied_at"`
	InterviewDate    *time.Time         `json:"interview_date"`
	OfferDate        *time.Time         `json:"offer_date"`
	UnsuccessfulDate *time.Time         `json:"unsuccessful_date"`
	JobSpec          *string            `json:"job_spec"`
	JobSpecName      *string            `json:"job_spec_name"`
	ResumeName       *string            `json:"resume_name"`
	Tags             *[]string          `json:"tags"`
	IsFavorite       *bool              `json:"is_favorite"`
}

// Columns converts the update into a column map for gorm. updated_at is
// always refreshed.
func (u *ApplicationUpdate) Columns() map[string]interface{} {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}

	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.Company != nil {
		updates["company"] = *u.Company
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.AppliedAt != nil {
		updates["applied_at"] = *u.AppliedAt
	}
	if u.InterviewDate != nil {
		updates["interview_date"] = *u.InterviewDate
	}
	if u.OfferDate != nil {
		updates["offer_date"] = *u.OfferDate
	}
	if u.UnsuccessfulDate != nil {
		updates["unsuccessful_date"] = *u.UnsuccessfulDate
	}
	if u.JobSpec != nil {
		updates["job_spec"] = *u.JobSpec
	}
	if u.JobSpecName != nil {
		updates["job_spec_name"] = *u.JobSpecName
	}
	if u.ResumeName != nil {
		updates["resume_name"] = *u.ResumeName
	}
	if u.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](*u.Tags)
	}
	if u.IsFavorite != nil {
		updates["is_favorite"] = *u.IsFavorite
	}

	return updates
}
