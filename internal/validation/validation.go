// Package validation vérifie les enregistrements avant tout appel à la base.
// Les contrôles sont ordonnés et court-circuitent sur la première erreur,
// pour afficher un message précis plutôt qu'une liste.
package validation

import (
	"strings"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/models"
)

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// Formation valide une formation. Ordre des contrôles : titre, catégorie,
// dates, heures, ville, participants, longueurs.
func Formation(f *models.Formation) error {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return apperr.Validation("title", "title_required")
	}
	if len(title) > 255 {
		return apperr.Validation("title", "title_too_long")
	}
	if !contains(models.FormationCategories, f.Category) {
		return apperr.Validation("category", "category_invalid")
	}
	if f.DateStart == "" {
		return apperr.Validation("dateStart", "date_start_required")
	}
	if f.DateEnd != "" && f.DateEnd < f.DateStart {
		return apperr.Validation("dateEnd", "date_range_invalid")
	}
	if f.TimeStart == "" {
		return apperr.Validation("timeStart", "time_start_required")
	}
	if f.TimeEnd == "" {
		return apperr.Validation("timeEnd", "time_end_required")
	}
	if !models.ValidCity(f.City) {
		return apperr.Validation("city", "city_invalid")
	}
	if f.MaxParticipants <= 0 {
		return apperr.Validation("maxParticipants", "max_participants_invalid")
	}
	if len(f.Location) > 255 {
		return apperr.Validation("location", "location_too_long")
	}
	if f.RegistrationLink != nil && len(*f.RegistrationLink) > 500 {
		return apperr.Validation("registrationLink", "link_too_long")
	}
	if f.Status != "" && !contains(models.FormationStatuses, f.Status) {
		return apperr.Validation("status", "status_invalid")
	}
	return nil
}

// Event valide un événement. L'heure de fin est facultative (elle est
// rabattue sur l'heure de début à la sauvegarde).
func Event(e *models.Event) error {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return apperr.Validation("title", "title_required")
	}
	if len(title) > 255 {
		return apperr.Validation("title", "title_too_long")
	}
	if e.DateStart == "" {
		return apperr.Validation("date", "date_required")
	}
	if e.TimeStart == "" {
		return apperr.Validation("timeStart", "time_start_required")
	}
	if e.TimeEnd != "" && e.TimeEnd < e.TimeStart {
		return apperr.Validation("timeEnd", "date_range_invalid")
	}
	if !models.ValidCity(e.City) {
		return apperr.Validation("city", "city_invalid")
	}
	if e.MaxParticipants <= 0 {
		return apperr.Validation("maxParticipants", "max_participants_invalid")
	}
	if len(e.Location) > 255 {
		return apperr.Validation("location", "location_too_long")
	}
	if e.RegistrationLink != nil && len(*e.RegistrationLink) > 500 {
		return apperr.Validation("registrationLink", "link_too_long")
	}
	if e.Status != "" && !contains(models.EventStatuses, e.Status) {
		return apperr.Validation("status", "status_invalid")
	}
	return nil
}
