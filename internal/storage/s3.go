// Package storage envoie les images vers le bucket objet (S3 ou
// compatible) et résout leurs URLs publiques.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/config"
	"odc-backoffice/internal/logger"
)

// Les deux seuls dossiers du bucket, un par type d'enregistrement.
const (
	FolderFormations = "formations"
	FolderEvents     = "events"
)

type ImageStore struct {
	client     *s3.S3
	bucket     string
	publicBase string
}

// New construit le client S3. L'URL publique de base est résolue une fois
// pour toutes ; si elle est impossible à dériver c'est une erreur de
// configuration, pas une URL cassée retournée plus tard.
func New(cfg config.Config) (*ImageStore, error) {
	awsCfg := aws.NewConfig().
		WithRegion(cfg.StorageRegion).
		WithCredentials(credentials.NewStaticCredentials(cfg.StorageAccessKey, cfg.StorageSecretKey, ""))
	if cfg.StorageEndpoint != "" {
		// stockage compatible S3 : endpoint explicite, adressage par chemin
		awsCfg = awsCfg.WithEndpoint(cfg.StorageEndpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, &apperr.ConfigError{Key: "STORAGE_ENDPOINT", Reason: err.Error()}
	}

	base := strings.TrimSuffix(cfg.StoragePublicURL, "/")
	if base == "" {
		switch {
		case cfg.StorageEndpoint != "":
			base = strings.TrimSuffix(cfg.StorageEndpoint, "/") + "/" + cfg.StorageBucket
		case cfg.StorageRegion != "":
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.StorageBucket, cfg.StorageRegion)
		default:
			return nil, &apperr.ConfigError{Key: "STORAGE_PUBLIC_URL", Reason: "URL publique du bucket non résoluble"}
		}
	}
	return &ImageStore{client: s3.New(sess), bucket: cfg.StorageBucket, publicBase: base}, nil
}

// CheckBucket vérifie que le bucket répond. Appelé au démarrage : un bucket
// injoignable bloque la session admin plutôt que d'échouer au premier envoi.
func (s *ImageStore) CheckBucket(ctx context.Context) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return &apperr.ConfigError{Key: "STORAGE_BUCKET", Reason: fmt.Sprintf("bucket %s injoignable: %v", s.bucket, err)}
	}
	return nil
}

// Upload pousse le contenu sous <folder>/<uuid><ext> et retourne l'URL
// publique. La validation du fichier a déjà eu lieu en amont.
func (s *ImageStore) Upload(ctx context.Context, folder, ext string, data []byte) (string, error) {
	key := folder + "/" + uuid.NewString() + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", apperr.Gateway("upload image", "upload_failed", err)
	}
	url := s.publicBase + "/" + key
	logger.Info.Printf("image envoyée: %s", url)
	return url, nil
}

// Delete retire l'objet correspondant à une URL publique du bucket.
// Les URLs étrangères au bucket sont ignorées sans erreur.
func (s *ImageStore) Delete(ctx context.Context, url string) error {
	key, ok := s.KeyFromURL(url)
	if !ok {
		logger.Debug.Printf("image externe, suppression ignorée: %s", url)
		return nil
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperr.Gateway("delete image", "delete_failed", err)
	}
	return nil
}

// KeyFromURL retrouve la clé objet d'une URL publique du bucket.
func (s *ImageStore) KeyFromURL(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	if rest, ok := strings.CutPrefix(url, s.publicBase+"/"); ok && rest != "" {
		return rest, true
	}
	// forme path-style alternative .../<bucket>/<clé>
	if parts := strings.SplitN(url, "/"+s.bucket+"/", 2); len(parts) == 2 && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}
