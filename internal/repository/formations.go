// Package repository est la passerelle vers la base : listes, sauvegardes et
// suppressions pour les trois ressources. Aucune nouvelle tentative en cas
// d'échec, l'erreur remonte à l'appelant qui informe l'admin.
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

type FormationRepository struct {
	db *gorm.DB
}

func NewFormationRepository(db *gorm.DB) *FormationRepository {
	return &FormationRepository{db: db}
}

// validID vérifie qu'un identifiant fourni par le client est bien un UUID.
// Un id mal formé ne doit jamais partir vers la base : il serait soit rejeté
// de façon opaque, soit accepté et créerait une ligne en double.
func validID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// List retourne toutes les formations, plus récentes d'abord.
func (r *FormationRepository) List(ctx context.Context) ([]models.Formation, error) {
	var out []models.Formation
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, apperr.Gateway("list formations", "list_failed", err)
	}
	return out, nil
}

// ListActive retourne les formations actives, prochaine date d'abord.
// C'est la requête de la page publique.
func (r *FormationRepository) ListActive(ctx context.Context) ([]models.Formation, error) {
	var out []models.Formation
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Order("date_start ASC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Gateway("list active formations", "list_failed", err)
	}
	return out, nil
}

// Get retourne une formation ou une NotFoundError.
func (r *FormationRepository) Get(ctx context.Context, id string) (*models.Formation, error) {
	var f models.Formation
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("formation", id)
	}
	if err != nil {
		return nil, apperr.Gateway("get formation", "list_failed", err)
	}
	return &f, nil
}

// Save insère ou met à jour selon l'identifiant, et retourne la ligne
// canonique relue en base (timestamps serveur compris).
//
// Règles appliquées avant écriture :
//   - id absent ou non-UUID : génération d'un UUID neuf, insertion
//   - current_participants : 0 à la création, valeur stockée en édition
//     (jamais la valeur soumise)
//   - status vide : "active" ; date_end vide : date_start ;
//     location vide : "ODC <ville>"
func (r *FormationRepository) Save(ctx context.Context, f *models.Formation) (*models.Formation, error) {
	rec := *f
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Status == "" {
		rec.Status = models.StatusActive
	}
	if rec.DateEnd == "" {
		rec.DateEnd = rec.DateStart
	}
	if strings.TrimSpace(rec.Location) == "" {
		rec.Location = "ODC " + models.CityName(rec.City)
	}

	tx := r.db.WithContext(ctx)
	if validID(rec.ID) {
		var stored models.Formation
		err := tx.First(&stored, "id = ?", rec.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// id plausible mais inconnu : insertion avec cet id
			rec.CurrentParticipants = 0
			if err := tx.Create(&rec).Error; err != nil {
				return nil, apperr.Gateway("insert formation", "save_failed", err)
			}
		case err != nil:
			return nil, apperr.Gateway("save formation", "save_failed", err)
		default:
			rec.CurrentParticipants = stored.CurrentParticipants
			rec.CreatedAt = stored.CreatedAt
			if err := tx.Model(&models.Formation{ID: rec.ID}).Select("*").Omit("id", "created_at").Updates(&rec).Error; err != nil {
				return nil, apperr.Gateway("update formation", "save_failed", err)
			}
		}
	} else {
		rec.ID = uuid.NewString()
		rec.CurrentParticipants = 0
		if err := tx.Create(&rec).Error; err != nil {
			return nil, apperr.Gateway("insert formation", "save_failed", err)
		}
	}

	var canonical models.Formation
	if err := tx.First(&canonical, "id = ?", rec.ID).Error; err != nil {
		return nil, apperr.Gateway("reload formation", "save_failed", err)
	}
	return &canonical, nil
}

// Delete supprime par identifiant. Zéro ligne touchée vaut NotFound.
func (r *FormationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Formation{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Gateway("delete formation", "delete_failed", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("formation", id)
	}
	return nil
}
