// Package httpx regroupe les helpers de réponse HTTP (JSON + erreurs).
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/i18n"
)

// ErrorResponse est l'enveloppe JSON standard des erreurs.
// Message est la phrase destinée à l'utilisateur ; Detail le texte brut
// éventuel pour le support.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		_ = err
	}
}

// WantsJSON applique la négociation Accept utilisée partout : JSON explicite
// et pas de text/html.
func WantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// Lang retourne la langue de l'admin pour les messages.
func Lang(r *http.Request) string {
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}

// WriteError mappe la taxonomie apperr sur un statut HTTP et une phrase
// traduite. Le message backend brut n'est jamais le texte principal.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.Code(err)
	resp := ErrorResponse{
		Error:   code,
		Message: i18n.T(Lang(r), code),
	}
	status := http.StatusInternalServerError
	if ve, ok := apperr.IsValidation(err); ok {
		status = http.StatusBadRequest
		resp.Field = ve.Field
	} else if _, ok := apperr.IsNotFound(err); ok {
		status = http.StatusNotFound
	} else {
		var ge *apperr.GatewayError
		if errors.As(err, &ge) {
			status = http.StatusBadGateway
			if ge.Err != nil {
				resp.Detail = ge.Err.Error()
			}
		}
		var ce *apperr.ConfigError
		if errors.As(err, &ce) {
			status = http.StatusServiceUnavailable
			resp.Detail = ce.Error()
		}
	}
	JSON(w, status, resp)
}
