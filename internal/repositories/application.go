package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/models"
)

// ApplicationRepository scopes every query by owner. Reads and writes against
// another owner's record match no rows.
type ApplicationRepository interface {
	Create(ownerID uuid.UUID, app *models.Application) error
	CreateMany(ownerID uuid.UUID, apps []models.Application) error
	FindByID(ownerID, id uuid.UUID) (*models.Application, error)
	ListByOwner(ownerID uuid.UUID, status models.ApplicationStatus) ([]models.Application, error)
	Update(ownerID, id uuid.UUID, update *models.ApplicationUpdate) (int64, error)
	Delete(ownerID, id uuid.UUID) (int64, error)
	DeleteSamples(ownerID uuid.UUID) (int64, error)
	AppendResponse(ownerID, id uuid.UUID, requestType models.RequestType, text string) ([]string, error)
	RemoveResponse(ownerID, id uuid.UUID, requestType models.RequestType, index int) ([]string, error)
	EachBatch(batchSize int, fn func(apps []models.Application) error) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ownerID uuid.UUID, app *models.Application) error {
	app.OwnerID = ownerID
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) CreateMany(ownerID uuid.UUID, apps []models.Application) error {
	if len(apps) == 0 {
		return nil
	}
	for i := range apps {
		apps[i].OwnerID = ownerID
	}
	if err := r.db.CreateInBatches(apps, 25).Error; err != nil {
		return fmt.Errorf("failed to create applications: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(ownerID, id uuid.UUID) (*models.Application, error) {
	return findOwned(r.db, ownerID, id)
}

func (r *applicationRepository) ListByOwner(ownerID uuid.UUID, status models.ApplicationStatus) ([]models.Application, error) {
	query := r.db.Where("owner_id = ?", ownerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var apps []models.Application
	if err := query.Order("is_favorite DESC").Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) Update(ownerID, id uuid.UUID, update *models.ApplicationUpdate) (int64, error) {
	result := r.db.Model(&models.Application{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(update.Columns())

	if result.Error != nil {
		return 0, fmt.Errorf("failed to update application: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *applicationRepository) Delete(ownerID, id uuid.UUID) (int64, error) {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Application{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete application: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *applicationRepository) DeleteSamples(ownerID uuid.UUID) (int64, error) {
	result := r.db.Where("owner_id = ? AND is_sample = ?", ownerID, true).Delete(&models.Application{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete sample applications: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// AppendResponse adds text to the end of the saved insights of the given type.
func (r *applicationRepository) AppendResponse(ownerID, id uuid.UUID, requestType models.RequestType, text string) ([]string, error) {
	return r.editResponses(ownerID, id, requestType, func(current []string) ([]string, error) {
		return append(current, text), nil
	})
}

// RemoveResponse deletes the saved insight at index.
func (r *applicationRepository) RemoveResponse(ownerID, id uuid.UUID, requestType models.RequestType, index int) ([]string, error) {
	return r.editResponses(ownerID, id, requestType, func(current []string) ([]string, error) {
		if index < 0 || index >= len(current) {
			return nil, &models.ValidationError{
				Field:   "index",
				Message: fmt.Sprintf("out of range: %d not in [0, %d)", index, len(current)),
			}
		}
		return append(current[:index], current[index+1:]...), nil
	})
}

// editResponses reads the list, applies edit and writes it back in one
// transaction. Concurrent editors are last-write-wins.
func (r *applicationRepository) editResponses(
	ownerID, id uuid.UUID,
	requestType models.RequestType,
	edit func(current []string) ([]string, error),
) ([]string, error) {
	column := requestType.Column()
	if column == "" {
		return nil, &models.InvalidRequestTypeError{Type: string(requestType)}
	}

	var responses []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		app, err := findOwned(tx, ownerID, id)
		if err != nil {
			return err
		}

		current := append([]string{}, app.Responses(requestType)...)
		responses, err = edit(current)
		if err != nil {
			return err
		}

		result := tx.Model(&models.Application{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(map[string]interface{}{
				column:       datatypes.JSONSlice[string](responses),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update %s: %w", column, result.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

func (r *applicationRepository) EachBatch(batchSize int, fn func(apps []models.Application) error) error {
	var batch []models.Application
	result := r.db.FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		return fn(batch)
	})
	if result.Error != nil {
		return fmt.Errorf("failed to iterate applications: %w", result.Error)
	}
	return nil
}

func findOwned(db *gorm.DB, ownerID, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ApplicationNotFoundError{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}
