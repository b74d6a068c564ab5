// Package apperr définit la taxonomie d'erreurs du back-office.
//
// Quatre familles, aucune n'est retentée automatiquement :
//   - ValidationError : saisie invalide détectée côté serveur avant tout appel réseau
//   - GatewayError    : échec base de données / stockage, propagé tel quel
//   - NotFoundError   : identifiant absent du catalogue (session admin périmée)
//   - ConfigError     : configuration d'environnement manquante, fatale au démarrage
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError porte le champ fautif et un code traduisible par i18n.T.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s (%s)", e.Code, e.Field)
}

// Validation construit une ValidationError.
func Validation(field, code string) *ValidationError {
	return &ValidationError{Field: field, Code: code}
}

// NotFoundError signale un enregistrement disparu du catalogue.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s introuvable", e.Resource, e.ID)
}

// NotFound construit une NotFoundError.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// GatewayError enveloppe une erreur backend (DB ou stockage objet).
// Code est un code i18n court ("save_failed", "list_failed"...) ; le détail
// brut reste accessible via Unwrap pour le support.
type GatewayError struct {
	Op   string
	Code string
	Err  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway enveloppe err dans une GatewayError.
func Gateway(op, code string, err error) *GatewayError {
	return &GatewayError{Op: op, Code: code, Err: err}
}

// ConfigError signale une variable d'environnement absente ou un stockage
// injoignable au démarrage. Bloquant : la session admin ne doit pas démarrer.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Key, e.Reason)
}

// IsValidation extrait une ValidationError de la chaîne d'erreurs.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// IsNotFound extrait une NotFoundError.
func IsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	ok := errors.As(err, &nf)
	return nf, ok
}

// Code retourne le code i18n à afficher pour err, avec un défaut prudent.
func Code(err error) string {
	if ve, ok := IsValidation(err); ok {
		return ve.Code
	}
	if _, ok := IsNotFound(err); ok {
		return "record_not_found"
	}
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Code
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return "config_missing"
	}
	return "save_failed"
}
