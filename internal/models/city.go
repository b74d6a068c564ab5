package models

// Codes des quatre centres ODC.
const (
	CityRabat       = "rabat"
	CityAgadir      = "agadir"
	CityBenMsik     = "benmisk"
	CitySidiMaarouf = "sidimaarouf"
)

var Cities = []string{CityRabat, CityAgadir, CityBenMsik, CitySidiMaarouf}

var cityNames = map[string]string{
	CityRabat:       "Rabat",
	CityAgadir:      "Agadir",
	CityBenMsik:     "Ben M'sik",
	CitySidiMaarouf: "Sidi Maarouf",
}

// CityName retourne le nom affichable d'un code ville, ou le code lui-même
// s'il est inconnu.
func CityName(code string) string {
	if n, ok := cityNames[code]; ok {
		return n
	}
	return code
}

// ValidCity indique si code fait partie des quatre centres.
func ValidCity(code string) bool {
	_, ok := cityNames[code]
	return ok
}
