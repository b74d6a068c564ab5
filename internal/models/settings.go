package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Center décrit un centre ODC affiché sur la page publique.
type Center struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CenterList est stockée en JSON dans une colonne texte, lisible à
// l'identique sous Postgres et sous sqlite (tests).
type CenterList []Center

func (c CenterList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *CenterList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("centers: type inattendu %T", src)
	}
}

// Settings est la ligne unique (id=1) des réglages du site public.
type Settings struct {
	ID           uint       `gorm:"column:id;primaryKey" json:"id"`
	SiteTitle    string     `gorm:"column:site_title;size:255" json:"siteTitle"`
	HeroTitle    string     `gorm:"column:hero_title;size:255" json:"heroTitle"`
	HeroSubtitle string     `gorm:"column:hero_subtitle;size:500" json:"heroSubtitle"`
	ContactEmail string     `gorm:"column:contact_email;size:255" json:"contactEmail"`
	ContactPhone string     `gorm:"column:contact_phone;size:64" json:"contactPhone"`
	Centers      CenterList `gorm:"column:odc_centers;type:text" json:"odcCenters"`
}

func (Settings) TableName() string { return "settings" }

// DefaultSettings retourne les réglages servis quand la ligne n'existe pas
// encore en base.
func DefaultSettings() Settings {
	return Settings{
		ID:           1,
		SiteTitle:    "Orange Digital Center - Formations & Événements du Mois",
		HeroTitle:    "Orange Digital Center",
		HeroSubtitle: "Découvrez nos formations et événements dans tous nos centres Orange Digital Center",
		ContactEmail: "contact@odc.orange.ma",
		ContactPhone: "",
		Centers: CenterList{
			{Name: "ODC Rabat", Address: "Technopolis Rabat-Shore, Rabat", Phone: ""},
			{Name: "ODC Agadir", Address: "Quartier Industriel, Agadir", Phone: ""},
			{Name: "ODC Ben M'sik", Address: "Ben M'sik, Casablanca", Phone: ""},
			{Name: "ODC Sidi Maarouf", Address: "Sidi Maarouf, Casablanca", Phone: ""},
		},
	}
}
