package services

import (
	"context"

	"odc-backoffice/internal/images"
	"odc-backoffice/internal/logger"
)

// Uploader abstrait le stockage objet (implémenté par storage.ImageStore).
type Uploader interface {
	Upload(ctx context.Context, folder, ext string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// ImageService enchaîne validation synchrone, optimisation au mieux et
// envoi vers le bucket. La validation échoue avant toute E/S réseau.
type ImageService struct {
	store Uploader
}

func NewImageService(store Uploader) *ImageService {
	return &ImageService{store: store}
}

// Upload valide puis pousse l'image, et retourne son URL publique.
func (s *ImageService) Upload(ctx context.Context, folder string, data []byte) (string, error) {
	ext, err := images.Validate(data)
	if err != nil {
		return "", err
	}
	return s.store.Upload(ctx, folder, ext, images.Process(data))
}

// Remove supprime l'image au mieux : un échec est loggé, jamais bloquant
// pour l'opération qui l'a déclenché.
func (s *ImageService) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.store.Delete(ctx, url); err != nil {
		logger.Warn.Printf("suppression image %s: %v", url, err)
	}
}
