// Package services orchestre passerelle, catalogue mémoire et stockage
// d'images pour les écrans d'administration.
package services

import (
	"context"
	"sync"

	"odc-backoffice/internal/models"
	"odc-backoffice/internal/records"
	"odc-backoffice/internal/repository"
	"odc-backoffice/internal/storage"
	"odc-backoffice/internal/validation"
)

type CatalogService struct {
	formations *repository.FormationRepository
	events     *repository.EventRepository
	catalog    *records.Catalog
	images     *ImageService

	// Sérialise les écritures d'une même instance : l'équivalent serveur du
	// bouton désactivé pendant l'envoi, contre les doubles soumissions.
	saveMu sync.Mutex
}

func NewCatalogService(f *repository.FormationRepository, e *repository.EventRepository, img *ImageService) *CatalogService {
	return &CatalogService{
		formations: f,
		events:     e,
		catalog:    records.NewCatalog(),
		images:     img,
	}
}

// Reload recharge le catalogue complet depuis la base.
func (s *CatalogService) Reload(ctx context.Context) error {
	fs, err := s.formations.List(ctx)
	if err != nil {
		return err
	}
	es, err := s.events.List(ctx)
	if err != nil {
		return err
	}
	s.catalog.SetFormations(fs)
	s.catalog.SetEvents(es)
	return nil
}

// Formations retourne la copie mémoire courante.
func (s *CatalogService) Formations() []models.Formation { return s.catalog.Formations() }

// Events retourne la copie mémoire courante.
func (s *CatalogService) Events() []models.Event { return s.catalog.Events() }

// Formation cherche dans le catalogue (pour les écrans d'édition).
func (s *CatalogService) Formation(id string) (*models.Formation, error) {
	return s.catalog.Formation(id)
}

// Event cherche dans le catalogue.
func (s *CatalogService) Event(id string) (*models.Event, error) {
	return s.catalog.Event(id)
}

// ActiveFormations lit directement la base pour la page publique :
// uniquement les actives, prochaine date d'abord.
func (s *CatalogService) ActiveFormations(ctx context.Context) ([]models.Formation, error) {
	return s.formations.ListActive(ctx)
}

// ActiveEvents : pendant événements de ActiveFormations.
func (s *CatalogService) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.ListActive(ctx)
}

// SaveFormation valide, associe l'image éventuelle, sauvegarde, puis
// remplace l'entrée du catalogue par la ligne canonique retournée.
// imageData non vide = nouveau fichier sélectionné par l'admin.
func (s *CatalogService) SaveFormation(ctx context.Context, f *models.Formation, imageData []byte) (*models.Formation, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := validation.Formation(f); err != nil {
		return nil, err
	}
	if len(imageData) > 0 {
		url, err := s.images.Upload(ctx, storage.FolderFormations, imageData)
		if err != nil {
			return nil, err
		}
		f.Image = &url
	} else if f.ID != "" && f.Image == nil {
		// édition sans nouveau fichier : l'URL stockée est conservée telle
		// quelle, jamais effacée en silence
		if prev, err := s.catalog.Formation(f.ID); err == nil {
			f.Image = prev.Image
		} else if prev, err := s.formations.Get(ctx, f.ID); err == nil {
			f.Image = prev.Image
		}
	}
	canonical, err := s.formations.Save(ctx, f)
	if err != nil {
		return nil, err
	}
	s.catalog.PutFormation(*canonical)
	return canonical, nil
}

// SaveEvent : même déroulé que SaveFormation.
func (s *CatalogService) SaveEvent(ctx context.Context, e *models.Event, imageData []byte) (*models.Event, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := validation.Event(e); err != nil {
		return nil, err
	}
	if len(imageData) > 0 {
		url, err := s.images.Upload(ctx, storage.FolderEvents, imageData)
		if err != nil {
			return nil, err
		}
		e.Image = &url
	} else if e.ID != "" && e.Image == nil {
		if prev, err := s.catalog.Event(e.ID); err == nil {
			e.Image = prev.Image
		} else if prev, err := s.events.Get(ctx, e.ID); err == nil {
			e.Image = prev.Image
		}
	}
	canonical, err := s.events.Save(ctx, e)
	if err != nil {
		return nil, err
	}
	s.catalog.PutEvent(*canonical)
	return canonical, nil
}

// DeleteFormation vérifie d'abord le catalogue : un identifiant périmé
// (supprimé par une autre session) remonte NotFound sans aucun appel à la
// base. L'image associée est retirée du bucket au mieux.
func (s *CatalogService) DeleteFormation(ctx context.Context, id string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	stored, err := s.catalog.Formation(id)
	if err != nil {
		return err
	}
	if err := s.formations.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.RemoveFormation(id)
	s.images.Remove(ctx, stored.ImageURL())
	return nil
}

// DeleteEvent : même déroulé que DeleteFormation.
func (s *CatalogService) DeleteEvent(ctx context.Context, id string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	stored, err := s.catalog.Event(id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.RemoveEvent(id)
	s.images.Remove(ctx, stored.ImageURL())
	return nil
}
