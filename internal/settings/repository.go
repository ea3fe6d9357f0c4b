package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/madhavavarma/storeadminnom/internal/repo"
	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

// Repository persists app settings rows keyed by name.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Get loads the settings row for the key, or gorm.ErrRecordNotFound.
func (r *Repository) Get(ctx context.Context, key string) (*models.AppSettings, error) {
	var row models.AppSettings
	if err := r.DB(ctx).First(&row, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert writes the value for the key, inserting the row on first use.
func (r *Repository) Upsert(ctx context.Context, key string, value types.JSONMap) (*models.AppSettings, error) {
	row := models.AppSettings{Key: key, Value: value}
	err := r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
