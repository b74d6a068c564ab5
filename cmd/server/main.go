package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"odc-backoffice/internal/config"
	"odc-backoffice/internal/db"
	"odc-backoffice/internal/logger"
	"odc-backoffice/internal/repository"
	"odc-backoffice/internal/server"
	"odc-backoffice/internal/services"
	"odc-backoffice/internal/storage"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Applique les migrations et quitte")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Configuration incomplète : on refuse de démarrer plutôt que de
		// servir un back-office sans base ni bucket.
		logger.Error.Fatalf("configuration: %v", err)
	}
	logger.SetEnv(cfg.Env)

	if *migrateOnlyFlag {
		if err := db.Migrate(cfg.DatabaseDSN); err != nil {
			logger.Error.Fatalf("migrations: %v", err)
		}
		logger.Info.Println("migrations appliquées")
		return
	}

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		logger.Error.Fatalf("base de données: %v", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		logger.Error.Fatalf("stockage images: %v", err)
	}
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.CheckBucket(startupCtx); err != nil {
		cancelStartup()
		logger.Error.Fatalf("bucket images injoignable: %v", err)
	}
	cancelStartup()

	catalog := services.NewCatalogService(
		repository.NewFormationRepository(conn),
		repository.NewEventRepository(conn),
		services.NewImageService(store),
	)
	settings := services.NewSettingsService(repository.NewSettingsRepository(conn))

	router := server.NewRouter(server.Deps{
		Catalog:  catalog,
		Settings: settings,
		Ping: func(ctx context.Context) error {
			return conn.WithContext(ctx).Exec("SELECT 1").Error
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info.Printf("back-office ODC sur le port %s (env=%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error.Fatalf("serveur: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info.Println("signal d'arrêt reçu")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error.Printf("arrêt: %v", err)
	}
	logger.Info.Println("serveur arrêté proprement")
}
