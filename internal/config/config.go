// Package config charge la configuration d'environnement du back-office.
package config

import (
	"os"
	"strconv"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/logger"
)

type Config struct {
	Port string
	Env  string

	// Base de données (obligatoire)
	DatabaseDSN string

	// Stockage objet des images (bucket S3 ou compatible)
	StorageBucket    string
	StorageRegion    string
	StorageEndpoint  string // vide pour AWS, renseigné pour un stockage compatible
	StorageAccessKey string
	StorageSecretKey string
	// URL publique de base du bucket ; si vide elle est dérivée de
	// l'endpoint ou de la région.
	StoragePublicURL string
}

// Load lit l'environnement. L'absence du DSN base ou de la clé d'accès
// stockage est une erreur de configuration fatale : le back-office ne doit
// pas démarrer en silence sans backend.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "odc-images"),
		StorageRegion:    getEnv("STORAGE_REGION", "eu-west-3"),
		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		StoragePublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
	}
	if cfg.DatabaseDSN == "" {
		return cfg, &apperr.ConfigError{Key: "DATABASE_DSN", Reason: "variable absente"}
	}
	if cfg.StorageAccessKey == "" || cfg.StorageSecretKey == "" {
		return cfg, &apperr.ConfigError{Key: "STORAGE_ACCESS_KEY", Reason: "identifiants de stockage absents"}
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool lit une variable booléenne avec défaut.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn.Printf("booléen invalide pour %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
