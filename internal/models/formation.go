// Package models définit les enregistrements du back-office ODC.
//
// Les tags gorm portent les noms de colonnes snake_case du contrat de
// données ; les tags json exposent la forme camelCase consommée par
// l'interface d'administration. C'est l'unique table de correspondance
// entre les deux mondes : toute modification de schéma passe par ici.
package models

import "time"

// Catégories de formation.
const (
	CategoryEcoleDuCode = "ecole-du-code"
	CategoryFablab      = "fablab"
)

// Statuts de formation (deux états, contrairement aux événements).
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var FormationCategories = []string{CategoryEcoleDuCode, CategoryFablab}

var FormationStatuses = []string{StatusActive, StatusInactive}

// Formation représente une formation planifiée dans un centre ODC.
// Les dates sont des chaînes ISO (AAAA-MM-JJ) et les heures HH:MM,
// telles qu'échangées avec les formulaires.
type Formation struct {
	ID                  string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Title               string    `gorm:"column:title;size:255;not null" json:"title"`
	Category            string    `gorm:"column:category;size:32;not null" json:"category"`
	Description         string    `gorm:"column:description" json:"description"`
	DateStart           string    `gorm:"column:date_start;size:10;not null" json:"dateStart"`
	DateEnd             string    `gorm:"column:date_end;size:10" json:"dateEnd"`
	TimeStart           string    `gorm:"column:time_start;size:5;not null" json:"timeStart"`
	TimeEnd             string    `gorm:"column:time_end;size:5" json:"timeEnd"`
	City                string    `gorm:"column:city;size:32;not null" json:"city"`
	Location            string    `gorm:"column:location;size:255" json:"location"`
	Image               *string   `gorm:"column:image;size:500" json:"image"`
	MaxParticipants     int       `gorm:"column:max_participants;not null" json:"maxParticipants"`
	CurrentParticipants int       `gorm:"column:current_participants;not null;default:0" json:"currentParticipants"`
	RegistrationLink    *string   `gorm:"column:registration_link;size:500" json:"registrationLink"`
	Status              string    `gorm:"column:status;size:16;not null;default:active" json:"status"`
	Price               float64   `gorm:"column:price;default:0" json:"price"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Formation) TableName() string { return "formations" }

// Remaining retourne le nombre de places restantes.
func (f Formation) Remaining() int {
	return f.MaxParticipants - f.CurrentParticipants
}

// IsFull indique si la formation est complète.
func (f Formation) IsFull() bool {
	return f.CurrentParticipants >= f.MaxParticipants
}

// Upcoming indique si la formation démarre strictement après now.
// Comparaison lexicale valable sur les dates ISO.
func (f Formation) Upcoming(now time.Time) bool {
	return f.DateStart > now.Format("2006-01-02")
}

// ImageURL retourne l'URL d'image ou une chaîne vide.
func (f Formation) ImageURL() string {
	if f.Image == nil {
		return ""
	}
	return *f.Image
}
