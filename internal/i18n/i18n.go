// Package i18n fournit les messages utilisateur (français par défaut).
// Les codes d'erreur techniques ne sont jamais montrés tels quels à l'admin :
// chaque code est traduit en une phrase courte.
package i18n

import "strings"

var fr = map[string]string{
	"required":                 "Requis",
	"title_required":           "Veuillez saisir un titre",
	"title_too_long":           "Le titre doit faire entre 1 et 255 caractères",
	"category_invalid":         "Catégorie invalide",
	"city_invalid":             "Ville invalide",
	"date_start_required":      "Veuillez saisir une date de début",
	"date_required":            "Veuillez saisir une date",
	"date_range_invalid":       "La date de fin doit être postérieure à la date de début",
	"time_start_required":      "Veuillez saisir une heure de début",
	"time_end_required":        "Veuillez saisir une heure de fin",
	"status_invalid":           "Statut invalide",
	"location_too_long":        "Le lieu doit faire moins de 255 caractères",
	"link_too_long":            "Le lien d'inscription doit faire moins de 500 caractères",
	"max_participants_invalid": "Le nombre maximum de participants doit être supérieur à zéro",
	"image_type_invalid":       "Veuillez sélectionner un fichier image (JPEG, PNG, GIF ou WebP)",
	"image_too_large":          "L'image dépasse la taille maximale de 5 Mo",
	"record_not_found":         "Cet enregistrement n'existe plus (il a peut-être été supprimé)",
	"save_failed":              "La sauvegarde a échoué, veuillez réessayer",
	"delete_failed":            "La suppression a échoué, veuillez réessayer",
	"list_failed":              "Impossible de charger les données",
	"upload_failed":            "L'envoi de l'image a échoué",
	"storage_unavailable":      "Le stockage d'images n'est pas accessible",
	"config_missing":           "Configuration incomplète, contactez l'administrateur",
	"saved":                    "Enregistré avec succès",
	"deleted":                  "Supprimé avec succès",
}

var en = map[string]string{
	"required":                 "Required",
	"title_required":           "Please enter a title",
	"title_too_long":           "Title must be between 1 and 255 characters",
	"category_invalid":         "Invalid category",
	"city_invalid":             "Invalid city",
	"date_start_required":      "Please enter a start date",
	"date_required":            "Please enter a date",
	"date_range_invalid":       "End date must not be earlier than start date",
	"time_start_required":      "Please enter a start time",
	"time_end_required":        "Please enter an end time",
	"status_invalid":           "Invalid status",
	"location_too_long":        "Location must be under 255 characters",
	"link_too_long":            "Registration link must be under 500 characters",
	"max_participants_invalid": "Maximum participants must be greater than zero",
	"image_type_invalid":       "Please select an image file (JPEG, PNG, GIF or WebP)",
	"image_too_large":          "Image exceeds the 5 MB size limit",
	"record_not_found":         "This record no longer exists (it may have been deleted)",
	"save_failed":              "Save failed, please try again",
	"delete_failed":            "Delete failed, please try again",
	"list_failed":              "Could not load data",
	"upload_failed":            "Image upload failed",
	"storage_unavailable":      "Image storage is not reachable",
	"config_missing":           "Incomplete configuration, contact the administrator",
	"saved":                    "Saved successfully",
	"deleted":                  "Deleted successfully",
}

var langs = map[string]map[string]string{"fr": fr, "en": en}

// DetectLanguage lit un header Accept-Language et retourne "fr" ou "en".
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	for _, part := range strings.Split(h, ",") {
		tag := strings.SplitN(strings.TrimSpace(part), ";", 2)[0]
		if strings.HasPrefix(tag, "en") {
			return "en"
		}
		if strings.HasPrefix(tag, "fr") {
			return "fr"
		}
	}
	return "fr"
}

// T traduit un code. Langue inconnue -> français ; code inconnu -> le code.
func T(lang, code string) string {
	m, ok := langs[lang]
	if !ok {
		m = fr
	}
	if s, ok := m[code]; ok {
		return s
	}
	if s, ok := fr[code]; ok {
		return s
	}
	return code
}
