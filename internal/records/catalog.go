// Package records maintient la copie mémoire des formations et événements
// servie aux vues d'administration. La base reste la référence ; le
// catalogue est rechargé à la demande puis muté après chaque écriture
// réussie, en remplaçant l'entrée par la ligne canonique retournée par la
// passerelle (jamais par le brouillon soumis). Dernier écrivain gagnant.
package records

import (
	"sync"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/models"
)

type Catalog struct {
	mu         sync.Mutex
	formations []models.Formation
	events     []models.Event
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

// SetFormations remplace la liste complète (après un List passerelle).
func (c *Catalog) SetFormations(list []models.Formation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formations = append([]models.Formation(nil), list...)
}

// SetEvents remplace la liste complète.
func (c *Catalog) SetEvents(list []models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append([]models.Event(nil), list...)
}

// Formations retourne une copie de la liste courante, dans l'ordre de
// chargement.
func (c *Catalog) Formations() []models.Formation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Formation(nil), c.formations...)
}

// Events retourne une copie de la liste courante.
func (c *Catalog) Events() []models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Event(nil), c.events...)
}

// Formation cherche par identifiant ; NotFoundError si l'enregistrement a
// disparu (supprimé par une autre session admin).
func (c *Catalog) Formation(id string) (*models.Formation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.formations {
		if c.formations[i].ID == id {
			f := c.formations[i]
			return &f, nil
		}
	}
	return nil, apperr.NotFound("formation", id)
}

// Event cherche par identifiant.
func (c *Catalog) Event(id string) (*models.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.events {
		if c.events[i].ID == id {
			e := c.events[i]
			return &e, nil
		}
	}
	return nil, apperr.NotFound("événement", id)
}

// PutFormation remplace l'entrée de même id par la ligne canonique, ou
// l'insère en tête (les listes sont triées plus récent d'abord).
func (c *Catalog) PutFormation(canonical models.Formation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.formations {
		if c.formations[i].ID == canonical.ID {
			c.formations[i] = canonical
			return
		}
	}
	c.formations = append([]models.Formation{canonical}, c.formations...)
}

// PutEvent remplace ou insère en tête.
func (c *Catalog) PutEvent(canonical models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.events {
		if c.events[i].ID == canonical.ID {
			c.events[i] = canonical
			return
		}
	}
	c.events = append([]models.Event{canonical}, c.events...)
}

// RemoveFormation retire l'entrée par égalité d'identifiant.
func (c *Catalog) RemoveFormation(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.formations[:0]
	for _, f := range c.formations {
		if f.ID != id {
			out = append(out, f)
		}
	}
	c.formations = out
}

// RemoveEvent retire l'entrée par égalité d'identifiant.
func (c *Catalog) RemoveEvent(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.events[:0]
	for _, e := range c.events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	c.events = out
}
