// Package server assemble le routeur HTTP du back-office.
package server

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"odc-backoffice/internal/handlers"
	"odc-backoffice/internal/logger"
	"odc-backoffice/internal/services"
)

// Deps regroupe les services injectés dans le routeur.
type Deps struct {
	Catalog  *services.CatalogService
	Settings *services.SettingsService
	// Ping interroge la base pour les sondes ; nil accepte sans vérifier.
	Ping func(context.Context) error
}

// NewRouter configure toutes les routes : vitrine publique, admin
// formations, admin événements, réglages, sondes.
func NewRouter(d Deps) http.Handler {
	pages := handlers.NewPageHandler(d.Catalog, d.Settings)
	formations := handlers.NewFormationHandler(d.Catalog)
	events := handlers.NewEventHandler(d.Catalog)
	settings := handlers.NewSettingsHandler(d.Settings)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	// Vitrine publique et sondes
	r.Get("/", pages.Landing)
	health := handlers.Health(d.Ping)
	r.Get("/health", health)
	r.Get("/healthz", health)

	// Back-office
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", pages.Dashboard)

		r.Route("/formations", func(r chi.Router) {
			r.Get("/", formations.List)
			r.Get("/new", formations.New)
			r.Get("/{id}/edit", formations.Edit)
			r.Get("/{id}/qr", formations.FormationQR)
			r.Post("/save", formations.Save)
			r.Post("/delete", formations.Delete)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.List)
			r.Get("/new", events.New)
			r.Get("/{id}/edit", events.Edit)
			r.Get("/{id}/qr", events.EventQR)
			r.Post("/save", events.Save)
			r.Post("/delete", events.Delete)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settings.Show)
			r.Post("/save", settings.Save)
		})
	})

	// Fichiers statiques (CSS du back-office)
	r.Get("/static/*", staticHandler().ServeHTTP)

	return r
}

// staticHandler sert les assets avec un ETag calculé sur le contenu, pour
// que les navigateurs revalident à bas coût.
func staticHandler() http.Handler {
	fs := http.FileServer(http.Dir("static"))
	return http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, err := os.Open(filepath.Join("static", filepath.Clean(r.URL.Path))); err == nil {
			h := sha1.New()
			_, cerr := io.Copy(h, f)
			f.Close()
			if cerr == nil {
				etag := fmt.Sprintf("%q", hex.EncodeToString(h.Sum(nil)[:8]))
				w.Header().Set("ETag", etag)
				if r.Header.Get("If-None-Match") == etag {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fs.ServeHTTP(w, r)
	}))
}

// requestLogger trace méthode, chemin, statut et durée de chaque requête.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Info.Printf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
