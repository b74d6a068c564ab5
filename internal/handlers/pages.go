package handlers

import (
	"context"
	"net/http"
	"time"

	"odc-backoffice/internal/httpx"
	"odc-backoffice/internal/logger"
	"odc-backoffice/internal/models"
	"odc-backoffice/internal/services"
	"odc-backoffice/internal/view"
)

// PageHandler sert la page publique et le tableau de bord admin.
type PageHandler struct {
	Catalog  *services.CatalogService
	Settings *services.SettingsService
}

func NewPageHandler(catalog *services.CatalogService, settings *services.SettingsService) *PageHandler {
	return &PageHandler{Catalog: catalog, Settings: settings}
}

// Landing est la vitrine publique : formations et événements actifs,
// prochaine date d'abord, avec les réglages (titre, centres).
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	formations, err := h.Catalog.ActiveFormations(r.Context())
	if err != nil {
		logger.Error.Printf("landing formations: %v", err)
		httpx.WriteError(w, r, err)
		return
	}
	events, err := h.Catalog.ActiveEvents(r.Context())
	if err != nil {
		logger.Error.Printf("landing events: %v", err)
		httpx.WriteError(w, r, err)
		return
	}
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		logger.Error.Printf("landing réglages: %v", err)
		httpx.WriteError(w, r, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"formations": formations,
			"events":     events,
			"settings":   settings,
		})
		return
	}
	err = view.Render(w, r, "landing.html", map[string]any{
		"Formations": formations,
		"Events":     events,
		"Settings":   settings,
	})
	if err != nil {
		logger.Error.Printf("render landing: %v", err)
	}
}

// Dashboard résume les volumes pour l'accueil admin.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Reload(r.Context()); err != nil {
		logger.Error.Printf("reload catalogue: %v", err)
		httpx.WriteError(w, r, err)
		return
	}
	now := time.Now()
	formations := h.Catalog.Formations()
	events := h.Catalog.Events()
	var upcomingF []models.Formation
	var upcomingE []models.Event
	activeF, activeE := 0, 0
	for _, f := range formations {
		if f.Status == models.StatusActive {
			activeF++
		}
		if f.Upcoming(now) {
			upcomingF = append(upcomingF, f)
		}
	}
	for _, e := range events {
		if e.Status == models.EventStatusActive {
			activeE++
		}
		if e.Upcoming(now) {
			upcomingE = append(upcomingE, e)
		}
	}
	stats := map[string]int{
		"formations":         len(formations),
		"formationsActive":   activeF,
		"formationsUpcoming": len(upcomingF),
		"events":             len(events),
		"eventsActive":       activeE,
		"eventsUpcoming":     len(upcomingE),
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, stats)
		return
	}
	err := view.Render(w, r, "dashboard.html", map[string]any{
		"Stats":      stats,
		"Formations": upcomingF,
		"Events":     upcomingE,
	})
	if err != nil {
		logger.Error.Printf("render dashboard: %v", err)
	}
}

// Health retourne le handler des sondes : la base est interrogée pour ne
// pas répondre ok avec un backend mort.
func Health(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				logger.Error.Printf("sonde base: %v", err)
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "db_unreachable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
