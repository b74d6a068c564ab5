package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List retourne tous les événements, plus récents d'abord.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, apperr.Gateway("list events", "list_failed", err)
	}
	return out, nil
}

// ListActive retourne les événements actifs, prochaine date d'abord.
func (r *EventRepository) ListActive(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	err := r.db.WithContext(ctx).
		Where("status = ?", models.EventStatusActive).
		Order("date_start ASC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Gateway("list active events", "list_failed", err)
	}
	return out, nil
}

// Get retourne un événement ou une NotFoundError.
func (r *EventRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("événement", id)
	}
	if err != nil {
		return nil, apperr.Gateway("get event", "list_failed", err)
	}
	return &e, nil
}

// Save insère ou met à jour un événement et retourne la ligne canonique.
// time_end vide est rabattu sur time_start (contrainte NOT NULL historique).
func (r *EventRepository) Save(ctx context.Context, e *models.Event) (*models.Event, error) {
	rec := *e
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Status == "" {
		rec.Status = models.EventStatusActive
	}
	if rec.TimeEnd == "" {
		rec.TimeEnd = rec.TimeStart
	}
	if strings.TrimSpace(rec.Location) == "" {
		rec.Location = "ODC " + models.CityName(rec.City)
	}

	tx := r.db.WithContext(ctx)
	if validID(rec.ID) {
		var stored models.Event
		err := tx.First(&stored, "id = ?", rec.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec.CurrentParticipants = 0
			if err := tx.Create(&rec).Error; err != nil {
				return nil, apperr.Gateway("insert event", "save_failed", err)
			}
		case err != nil:
			return nil, apperr.Gateway("save event", "save_failed", err)
		default:
			rec.CurrentParticipants = stored.CurrentParticipants
			rec.CreatedAt = stored.CreatedAt
			if err := tx.Model(&models.Event{ID: rec.ID}).Select("*").Omit("id", "created_at").Updates(&rec).Error; err != nil {
				return nil, apperr.Gateway("update event", "save_failed", err)
			}
		}
	} else {
		rec.ID = uuid.NewString()
		rec.CurrentParticipants = 0
		if err := tx.Create(&rec).Error; err != nil {
			return nil, apperr.Gateway("insert event", "save_failed", err)
		}
	}

	var canonical models.Event
	if err := tx.First(&canonical, "id = ?", rec.ID).Error; err != nil {
		return nil, apperr.Gateway("reload event", "save_failed", err)
	}
	return &canonical, nil
}

// Delete supprime par identifiant. Zéro ligne touchée vaut NotFound.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Gateway("delete event", "delete_failed", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("événement", id)
	}
	return nil
}
