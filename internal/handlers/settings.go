package handlers

import (
	"net/http"
	"strings"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/httpx"
	"odc-backoffice/internal/i18n"
	"odc-backoffice/internal/logger"
	"odc-backoffice/internal/models"
	"odc-backoffice/internal/services"
	"odc-backoffice/internal/view"
)

type SettingsHandler struct {
	Svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Svc: svc}
}

// Show affiche le formulaire de réglages du site public.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.Get(r.Context())
	if err != nil {
		logger.Error.Printf("lecture réglages: %v", err)
		httpx.WriteError(w, r, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, s)
		return
	}
	data := map[string]any{"Settings": s}
	if notice := r.URL.Query().Get("notice"); notice != "" {
		data["Notice"] = i18n.T(httpx.Lang(r), notice)
	}
	if err := view.Render(w, r, "settings.html", data); err != nil {
		logger.Error.Printf("render réglages: %v", err)
	}
}

// Save remplace la ligne unique. Les centres arrivent en champs parallèles
// centerName/centerAddress/centerPhone (une entrée par centre).
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.WriteError(w, r, apperr.Gateway("parse form", "save_failed", err))
		return
	}
	in := &models.Settings{
		SiteTitle:    r.Form.Get("siteTitle"),
		HeroTitle:    r.Form.Get("heroTitle"),
		HeroSubtitle: r.Form.Get("heroSubtitle"),
		ContactEmail: r.Form.Get("contactEmail"),
		ContactPhone: r.Form.Get("contactPhone"),
		Centers:      centersFromForm(r),
	}
	saved, err := h.Svc.Save(r.Context(), in)
	if err != nil {
		logger.Error.Printf("sauvegarde réglages: %v", err)
		httpx.WriteError(w, r, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, saved)
		return
	}
	http.Redirect(w, r, "/admin/settings?notice=saved", http.StatusSeeOther)
}

func centersFromForm(r *http.Request) models.CenterList {
	names := r.Form["centerName"]
	addresses := r.Form["centerAddress"]
	phones := r.Form["centerPhone"]
	var out models.CenterList
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c := models.Center{Name: name}
		if i < len(addresses) {
			c.Address = strings.TrimSpace(addresses[i])
		}
		if i < len(phones) {
			c.Phone = strings.TrimSpace(phones[i])
		}
		out = append(out, c)
	}
	return out
}
