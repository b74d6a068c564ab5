package services

import (
	"context"
	"strings"

	"odc-backoffice/internal/models"
	"odc-backoffice/internal/repository"
)

// SettingsService gère la ligne unique de réglages du site public.
type SettingsService struct {
	repo *repository.SettingsRepository
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.repo.Get(ctx)
}

// Save normalise les champs texte puis remplace la ligne. Les champs
// laissés vides retombent sur les valeurs par défaut du site.
func (s *SettingsService) Save(ctx context.Context, in *models.Settings) (*models.Settings, error) {
	def := models.DefaultSettings()
	rec := *in
	rec.SiteTitle = strings.TrimSpace(rec.SiteTitle)
	rec.HeroTitle = strings.TrimSpace(rec.HeroTitle)
	rec.HeroSubtitle = strings.TrimSpace(rec.HeroSubtitle)
	rec.ContactEmail = strings.TrimSpace(rec.ContactEmail)
	rec.ContactPhone = strings.TrimSpace(rec.ContactPhone)
	if rec.SiteTitle == "" {
		rec.SiteTitle = def.SiteTitle
	}
	if rec.HeroTitle == "" {
		rec.HeroTitle = def.HeroTitle
	}
	if rec.HeroSubtitle == "" {
		rec.HeroSubtitle = def.HeroSubtitle
	}
	if len(rec.Centers) == 0 {
		rec.Centers = def.Centers
	}
	return s.repo.Save(ctx, &rec)
}
