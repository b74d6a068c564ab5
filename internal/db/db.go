// Package db gère la connexion Postgres et les migrations de schéma.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Enregistrement du driver postgres et de la source fichier pour golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"odc-backoffice/internal/logger"
)

// Connect ouvre la base avec quelques tentatives pour laisser le temps à un
// conteneur de démarrer, puis vérifie la connectivité.
func Connect(rawDSN string) (*gorm.DB, error) {
	dsn := NormalizeDSN(rawDSN)
	if dsn == "" {
		return nil, fmt.Errorf("DSN vide, vérifiez DATABASE_DSN")
	}
	logLevel := gormlogger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = gormlogger.Info
	}
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		logger.Warn.Printf("connexion DB en attente: %v", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connexion base impossible après tentatives: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("ping base: %w", pingErr)
	}
	return conn, nil
}

// migrationsDir localise le dossier migrations selon le répertoire de lancement.
func migrationsDir() string {
	candidates := []string{"migrations", "../migrations", "../../migrations"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			return filepath.Clean(c)
		}
	}
	return "migrations"
}

// Migrate applique les migrations SQL en attente.
func Migrate(rawDSN string) error {
	urlDSN := ToURLDSN(NormalizeDSN(rawDSN))
	m, err := migrate.New("file://"+migrationsDir(), urlDSN)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// ConnectAndMigrate enchaîne connexion puis migrations.
func ConnectAndMigrate(rawDSN string) (*gorm.DB, error) {
	conn, err := Connect(rawDSN)
	if err != nil {
		return nil, err
	}
	if err := Migrate(rawDSN); err != nil {
		return nil, err
	}
	return conn, nil
}
