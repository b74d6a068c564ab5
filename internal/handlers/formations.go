// Package handlers relie les requêtes HTTP de l'admin aux services.
// Chaque écran répond en HTML ou en JSON selon l'en-tête Accept
// (même motif partout).
package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/filter"
	"odc-backoffice/internal/httpx"
	"odc-backoffice/internal/i18n"
	"odc-backoffice/internal/images"
	"odc-backoffice/internal/logger"
	"odc-backoffice/internal/models"
	"odc-backoffice/internal/services"
	"odc-backoffice/internal/view"
)

// maxFormMemory borne le parsing multipart ; le plafond réel des images
// (5 Mo) est contrôlé par le pipeline images.
const maxFormMemory = 8 << 20

type FormationHandler struct {
	Svc *services.CatalogService
}

func NewFormationHandler(svc *services.CatalogService) *FormationHandler {
	return &FormationHandler{Svc: svc}
}

// criteriaFromQuery lit les filtres de liste depuis l'URL.
func criteriaFromQuery(r *http.Request) filter.Criteria {
	q := r.URL.Query()
	return filter.Criteria{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: q.Get("category"),
		City:     q.Get("city"),
		Status:   q.Get("status"),
	}
}

// imageFromForm lit le fichier image optionnel d'un formulaire multipart.
// Retourne nil quand le champ est resté vide (image non touchée).
func imageFromForm(r *http.Request) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, _, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Validation("image", "image_type_invalid")
	}
	defer file.Close()
	// un octet au-delà du plafond suffit à faire échouer la validation
	data, err := io.ReadAll(io.LimitReader(file, images.MaxFileSize+1))
	if err != nil {
		return nil, apperr.Validation("image", "image_type_invalid")
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// atoiOrZero coerce un champ numérique, zéro en cas d'échec de parsing
// (la validation rejettera ensuite le zéro avec un message précis).
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func optionalURL(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseForm accepte urlencoded et multipart.
func parseForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

func formationFromForm(r *http.Request) *models.Formation {
	return &models.Formation{
		ID:               strings.TrimSpace(r.Form.Get("id")),
		Title:            r.Form.Get("title"),
		Category:         r.Form.Get("category"),
		Description:      strings.TrimSpace(r.Form.Get("description")),
		DateStart:        r.Form.Get("dateStart"),
		DateEnd:          r.Form.Get("dateEnd"),
		TimeStart:        r.Form.Get("timeStart"),
		TimeEnd:          r.Form.Get("timeEnd"),
		City:             r.Form.Get("city"),
		Location:         r.Form.Get("location"),
		MaxParticipants:  atoiOrZero(r.Form.Get("maxParticipants")),
		RegistrationLink: optionalURL(r.Form.Get("registrationLink")),
		Status:           r.Form.Get("status"),
	}
}

// List affiche la liste filtrée. Le catalogue est rechargé à chaque
// affichage pour refléter les écritures des autres sessions.
func (h *FormationHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Reload(r.Context()); err != nil {
		logger.Error.Printf("reload catalogue: %v", err)
		httpx.WriteError(w, r, err)
		return
	}
	crit := criteriaFromQuery(r)
	items := filter.Formations(h.Svc.Formations(), crit)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
		return
	}
	h.renderList(w, r, items, crit, r.URL.Query().Get("notice"))
}

func (h *FormationHandler) renderList(w http.ResponseWriter, r *http.Request, items []models.Formation, crit filter.Criteria, notice string) {
	data := map[string]any{
		"Formations": items,
		"Total":      len(h.Svc.Formations()),
		"Criteria":   crit,
		"Cities":     models.Cities,
		"Categories": models.FormationCategories,
		"Statuses":   models.FormationStatuses,
	}
	if notice != "" {
		data["Notice"] = i18n.T(httpx.Lang(r), notice)
	}
	if err := view.Render(w, r, "formations.html", data); err != nil {
		logger.Error.Printf("render formations: %v", err)
	}
}

// New affiche le formulaire vide (état open-create).
func (h *FormationHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, &models.Formation{Status: models.StatusActive}, "")
}

// Edit affiche le formulaire prérempli (état open-edit). L'enregistrement
// est relu dans le catalogue : s'il a disparu, retour liste avec message.
func (h *FormationHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Svc.Reload(r.Context()); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	f, err := h.Svc.Formation(id)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.WriteError(w, r, err)
			return
		}
		http.Redirect(w, r, "/admin/formations?notice=record_not_found", http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, f)
		return
	}
	h.renderForm(w, r, f, "")
}

func (h *FormationHandler) renderForm(w http.ResponseWriter, r *http.Request, f *models.Formation, errMsg string) {
	data := map[string]any{
		"Formation":  f,
		"IsEdit":     f.ID != "",
		"Cities":     models.Cities,
		"Categories": models.FormationCategories,
		"Statuses":   models.FormationStatuses,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "formation_form.html", data); err != nil {
		logger.Error.Printf("render formulaire formation: %v", err)
	}
}

// Save traite la soumission (création comme édition). En cas d'erreur de
// validation le formulaire est réaffiché avec les valeurs saisies, jamais
// vidé.
func (h *FormationHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.WriteError(w, r, apperr.Gateway("parse form", "save_failed", err))
		return
	}
	f := formationFromForm(r)
	isNew := f.ID == ""
	var saved *models.Formation
	imageData, err := imageFromForm(r)
	if err == nil {
		saved, err = h.Svc.SaveFormation(r.Context(), f, imageData)
	}
	if err != nil {
		logger.Warn.Printf("sauvegarde formation: %v", err)
		if httpx.WantsJSON(r) {
			httpx.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderForm(w, r, f, i18n.T(httpx.Lang(r), apperr.Code(err)))
		return
	}
	if httpx.WantsJSON(r) {
		status := http.StatusOK
		if isNew {
			status = http.StatusCreated
		}
		httpx.JSON(w, status, saved)
		return
	}
	http.Redirect(w, r, "/admin/formations?notice=saved", http.StatusSeeOther)
}

// Delete supprime après le garde-fou catalogue (id périmé -> message, pas
// d'appel base).
func (h *FormationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.WriteError(w, r, apperr.Gateway("parse form", "delete_failed", err))
		return
	}
	id := r.Form.Get("id")
	if err := h.Svc.DeleteFormation(r.Context(), id); err != nil {
		logger.Warn.Printf("suppression formation %s: %v", id, err)
		if httpx.WantsJSON(r) {
			httpx.WriteError(w, r, err)
			return
		}
		http.Redirect(w, r, "/admin/formations?notice="+apperr.Code(err), http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
		return
	}
	http.Redirect(w, r, "/admin/formations?notice=deleted", http.StatusSeeOther)
}
