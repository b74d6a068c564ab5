package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/models"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retourne la ligne unique de réglages, ou les valeurs par défaut si
// elle n'a jamais été écrite.
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	err := r.db.WithContext(ctx).First(&s, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultSettings()
		return &def, nil
	}
	if err != nil {
		return nil, apperr.Gateway("get settings", "list_failed", err)
	}
	return &s, nil
}

// Save remplace la ligne unique (id forcé à 1).
func (r *SettingsRepository) Save(ctx context.Context, s *models.Settings) (*models.Settings, error) {
	rec := *s
	rec.ID = 1
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return nil, apperr.Gateway("save settings", "save_failed", err)
	}
	var canonical models.Settings
	if err := r.db.WithContext(ctx).First(&canonical, "id = ?", 1).Error; err != nil {
		return nil, apperr.Gateway("reload settings", "save_failed", err)
	}
	return &canonical, nil
}
