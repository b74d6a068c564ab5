package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/filter"
	"odc-backoffice/internal/httpx"
	"odc-backoffice/internal/i18n"
	"odc-backoffice/internal/logger"
	"odc-backoffice/internal/models"
	"odc-backoffice/internal/services"
	"odc-backoffice/internal/view"
)

type EventHandler struct {
	Svc *services.CatalogService
}

func NewEventHandler(svc *services.CatalogService) *EventHandler {
	return &EventHandler{Svc: svc}
}

func eventFromForm(r *http.Request) *models.Event {
	return &models.Event{
		ID:               strings.TrimSpace(r.Form.Get("id")),
		Title:            r.Form.Get("title"),
		Description:      strings.TrimSpace(r.Form.Get("description")),
		Speaker:          strings.TrimSpace(r.Form.Get("speaker")),
		DateStart:        r.Form.Get("date"),
		TimeStart:        r.Form.Get("timeStart"),
		TimeEnd:          r.Form.Get("timeEnd"),
		City:             r.Form.Get("city"),
		Location:         r.Form.Get("location"),
		MaxParticipants:  atoiOrZero(r.Form.Get("maxParticipants")),
		RegistrationLink: optionalURL(r.Form.Get("registrationLink")),
		Status:           r.Form.Get("status"),
	}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Reload(r.Context()); err != nil {
		logger.Error.Printf("reload catalogue: %v", err)
		httpx.WriteError(w, r, err)
		return
	}
	crit := criteriaFromQuery(r)
	items := filter.Events(h.Svc.Events(), crit)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
		return
	}
	h.renderList(w, r, items, crit, r.URL.Query().Get("notice"))
}

func (h *EventHandler) renderList(w http.ResponseWriter, r *http.Request, items []models.Event, crit filter.Criteria, notice string) {
	data := map[string]any{
		"Events":   items,
		"Total":    len(h.Svc.Events()),
		"Criteria": crit,
		"Cities":   models.Cities,
		"Statuses": models.EventStatuses,
	}
	if notice != "" {
		data["Notice"] = i18n.T(httpx.Lang(r), notice)
	}
	if err := view.Render(w, r, "events.html", data); err != nil {
		logger.Error.Printf("render events: %v", err)
	}
}

func (h *EventHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, &models.Event{Status: models.EventStatusActive}, "")
}

func (h *EventHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Svc.Reload(r.Context()); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	e, err := h.Svc.Event(id)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.WriteError(w, r, err)
			return
		}
		http.Redirect(w, r, "/admin/events?notice=record_not_found", http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, e)
		return
	}
	h.renderForm(w, r, e, "")
}

func (h *EventHandler) renderForm(w http.ResponseWriter, r *http.Request, e *models.Event, errMsg string) {
	data := map[string]any{
		"Event":    e,
		"IsEdit":   e.ID != "",
		"Cities":   models.Cities,
		"Statuses": models.EventStatuses,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "event_form.html", data); err != nil {
		logger.Error.Printf("render formulaire event: %v", err)
	}
}

func (h *EventHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.WriteError(w, r, apperr.Gateway("parse form", "save_failed", err))
		return
	}
	e := eventFromForm(r)
	isNew := e.ID == ""
	var saved *models.Event
	imageData, err := imageFromForm(r)
	if err == nil {
		saved, err = h.Svc.SaveEvent(r.Context(), e, imageData)
	}
	if err != nil {
		logger.Warn.Printf("sauvegarde event: %v", err)
		if httpx.WantsJSON(r) {
			httpx.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderForm(w, r, e, i18n.T(httpx.Lang(r), apperr.Code(err)))
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
	http.Redirect(w, r, "/admin/events?notice=saved", http.StatusSeeOther)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.WriteError(w, r, apperr.Gateway("parse form", "delete_failed", err))
		return
	}
	id := r.Form.Get("id")
	if err := h.Svc.DeleteEvent(r.Context(), id); err != nil {
		logger.Warn.Printf("suppression event %s: %v", id, err)
		if httpx.WantsJSON(r) {
			httpx.WriteError(w, r, err)
			return
		}
		http.Redirect(w, r, "/admin/events?notice="+apperr.Code(err), http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
		return
	}
	http.Redirect(w, r, "/admin/events?notice=deleted", http.StatusSeeOther)
}
