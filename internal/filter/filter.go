// Package filter projette les listes du catalogue selon les critères de
// l'admin. Fonctions pures : même entrée, même sortie, ordre relatif
// conservé (filtre stable, pas de tri).
package filter

import (
	"strings"

	"odc-backoffice/internal/models"
)

// Criteria porte les filtres de liste. Un critère vide signifie
// "tout accepter", jamais "ne rien accepter".
type Criteria struct {
	Search   string // sous-chaîne, insensible à la casse
	Category string // égalité stricte (formations uniquement)
	City     string // égalité stricte
	Status   string // égalité stricte
}

// Empty indique qu'aucun filtre n'est actif.
func (c Criteria) Empty() bool {
	return c.Search == "" && c.Category == "" && c.City == "" && c.Status == ""
}

func matchText(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Formations retourne le sous-ensemble filtré, dans l'ordre d'origine.
// La recherche texte couvre titre, description, lieu et nom de ville
// affiché (un admin qui tape "Ben M'sik" doit trouver benmisk).
func Formations(list []models.Formation, c Criteria) []models.Formation {
	out := make([]models.Formation, 0, len(list))
	for _, f := range list {
		if c.Category != "" && f.Category != c.Category {
			continue
		}
		if c.City != "" && f.City != c.City {
			continue
		}
		if c.Status != "" && f.Status != c.Status {
			continue
		}
		if !matchText(c.Search, f.Title, f.Description, f.Location, models.CityName(f.City)) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Events retourne le sous-ensemble filtré, dans l'ordre d'origine.
func Events(list []models.Event, c Criteria) []models.Event {
	out := make([]models.Event, 0, len(list))
	for _, e := range list {
		if c.City != "" && e.City != c.City {
			continue
		}
		if c.Status != "" && e.Status != c.Status {
			continue
		}
		if !matchText(c.Search, e.Title, e.Description, e.Location) {
			continue
		}
		out = append(out, e)
	}
	return out
}
