// Package images valide et optimise les fichiers image côté serveur,
// avant tout envoi vers le stockage objet.
package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"

	"odc-backoffice/internal/apperr"
)

// MaxFileSize est le plafond accepté (5 Mo), identique au contrôle
// historique côté navigateur.
const MaxFileSize = 5 * 1024 * 1024

// maxDimension est le plus grand côté après réduction.
const maxDimension = 800

// jpegQuality est le facteur de ré-encodage JPEG.
const jpegQuality = 80

var acceptedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Validate contrôle type MIME (par sniffing du contenu, pas par extension)
// et taille, sans aucune E/S réseau. Retourne l'extension canonique du
// format détecté (".jpg", ".png"...).
func Validate(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	ok := false
	for _, t := range acceptedTypes {
		if mt.Is(t) {
			ok = true
			break
		}
	}
	if !ok {
		return "", apperr.Validation("image", "image_type_invalid")
	}
	if len(data) > MaxFileSize {
		return "", apperr.Validation("image", "image_too_large")
	}
	return mt.Extension(), nil
}

// Process réduit l'image à 800 px de plus grand côté (ratio conservé) et
// ré-encode en qualité fixe. Optimisation au mieux : GIF et WebP passent
// tels quels, et toute erreur de décodage rend l'original inchangé.
func Process(data []byte) []byte {
	mt := mimetype.Detect(data)
	if !mt.Is("image/jpeg") && !mt.Is("image/png") {
		return data
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDimension && h <= maxDimension {
		return data
	}
	if w >= h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return data
	}
	return buf.Bytes()
}
