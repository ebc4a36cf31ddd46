package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resume is an uploaded CV, identified by name within its owner's profile.
type Resume struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type User struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string                      `gorm:"type:text" json:"name"`
	Email     string                      `gorm:"type:text;uniqueIndex" json:"email"`
	Resumes   datatypes.JSONSlice[Resume] `json:"resumes"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FindResume returns the resume with the given name, if the profile has one.
func (u *User) FindResume(name string) (*Resume, bool) {
	for i := range u.Resumes {
		if u.Resumes[i].Name == name {
			return &u.Resumes[i], true
		}
	}
	return nil, false
}

// ResumeNames lists resume names in profile order.
func (u *User) ResumeNames() []string {
	names := make([]string, 0, len(u.Resumes))
	for _, r := range u.Resumes {
		names = append(names, r.Name)
	}
	return names
}
