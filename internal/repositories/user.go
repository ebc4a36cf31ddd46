package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	UpdateProfile(id uuid.UUID, profile *models.ProfileRequest) (int64, error)
}

// email is the only unique column on users besides the primary key.
func errEmailInUse() error {
	return &models.ValidationError{Field: "email", Message: "is already in use"}
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if user.Resumes == nil {
		user.Resumes = datatypes.JSONSlice[models.Resume]{}
	}
	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return errEmailInUse()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.UserNotFoundError{UserID: id.String()}
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// UpdateProfile replaces the name, email and resume list in one write.
func (r *userRepository) UpdateProfile(id uuid.UUID, profile *models.ProfileRequest) (int64, error) {
	resumes := datatypes.JSONSlice[models.Resume](profile.Resumes)
	if resumes == nil {
		resumes = datatypes.JSONSlice[models.Resume]{}
	}

	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       profile.Name,
			"email":      profile.Email,
			"resumes":    resumes,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return 0, errEmailInUse()
		}
		return 0, fmt.Errorf("failed to update profile: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// isDuplicateKey needs TranslateError on the gorm config; the string match
// covers sqlite builds whose dialector does not translate constraint errors.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
