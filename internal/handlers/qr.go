package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/httpx"
	"odc-backoffice/internal/logger"
)

const qrSize = 256

// FormationQR sert le QR code PNG du lien d'inscription, à imprimer sur
// les affiches. 404 quand la formation n'a pas de lien.
func (h *FormationHandler) FormationQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Svc.Reload(r.Context()); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	f, err := h.Svc.Formation(id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if f.RegistrationLink == nil || *f.RegistrationLink == "" {
		httpx.WriteError(w, r, apperr.NotFound("registration link", id))
		return
	}
	writeQR(w, *f.RegistrationLink)
}

// EventQR : pendant événement de FormationQR.
func (h *EventHandler) EventQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Svc.Reload(r.Context()); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	e, err := h.Svc.Event(id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if e.RegistrationLink == nil || *e.RegistrationLink == "" {
		httpx.WriteError(w, r, apperr.NotFound("registration link", id))
		return
	}
	writeQR(w, *e.RegistrationLink)
}

func writeQR(w http.ResponseWriter, link string) {
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		logger.Error.Printf("génération QR: %v", err)
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}
