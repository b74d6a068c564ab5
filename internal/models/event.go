package models

import "time"

// Statuts d'événement. Le cycle de vie est plus riche que celui des
// formations : un événement actif peut être ouvert aux inscriptions,
// complet, annulé ou reporté.
const (
	EventStatusActive   = "active"
	EventStatusOuvert   = "ouvert"
	EventStatusComplet  = "complet"
	EventStatusAnnule   = "annule"
	EventStatusReporte  = "reporte"
)

var EventStatuses = []string{
	EventStatusActive,
	EventStatusOuvert,
	EventStatusComplet,
	EventStatusAnnule,
	EventStatusReporte,
}

// Event représente un événement ponctuel (une seule date) dans un centre.
type Event struct {
	ID                  string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Title               string    `gorm:"column:title;size:255;not null" json:"title"`
	Description         string    `gorm:"column:description" json:"description"`
	DateStart           string    `gorm:"column:date_start;size:10;not null" json:"dateStart"`
	TimeStart           string    `gorm:"column:time_start;size:5;not null" json:"timeStart"`
	TimeEnd             string    `gorm:"column:time_end;size:5" json:"timeEnd"`
	City                string    `gorm:"column:city;size:32;not null" json:"city"`
	Location            string    `gorm:"column:location;size:255" json:"location"`
	Image               *string   `gorm:"column:image;size:500" json:"image"`
	Speaker             string    `gorm:"column:speaker;size:255" json:"speaker"`
	MaxParticipants     int       `gorm:"column:max_participants;not null" json:"maxParticipants"`
	CurrentParticipants int       `gorm:"column:current_participants;not null;default:0" json:"currentParticipants"`
	RegistrationLink    *string   `gorm:"column:registration_link;size:500" json:"registrationLink"`
	Status              string    `gorm:"column:status;size:16;not null;default:active" json:"status"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

// Remaining retourne le nombre de places restantes.
func (e Event) Remaining() int {
	return e.MaxParticipants - e.CurrentParticipants
}

// IsFull indique si l'événement est complet.
func (e Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}

// Upcoming indique si l'événement a lieu strictement après now.
func (e Event) Upcoming(now time.Time) bool {
	return e.DateStart > now.Format("2006-01-02")
}

// ImageURL retourne l'URL d'image ou une chaîne vide.
func (e Event) ImageURL() string {
	if e.Image == nil {
		return ""
	}
	return *e.Image
}
