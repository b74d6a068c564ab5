// Package view rend les templates HTML avec cache et helpers partagés.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"odc-backoffice/internal/i18n"
	"odc-backoffice/internal/models"
)

var (
	baseDir string
	once    sync.Once

	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

// detectBase localise le dossier templates selon le répertoire de lancement
// (racine du dépôt ou sous-dossier cmd/server).
func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir force le dossier de templates (tests).
func SetBaseDir(dir string) {
	once.Do(func() {})
	baseDir = dir
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
}

// Funcs retourne les helpers disponibles dans tous les templates.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	return template.FuncMap{
		"t":        func(code string) string { return i18n.T(lang, code) },
		"lang":     func() string { return lang },
		"cityName": models.CityName,
		"year":     func() int { return time.Now().Year() },
		// dict construit une map pour les sous-templates :
		// {{ template "partial" (dict "Key" val) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// load met en cache par couple (langue, template) : les fonctions t/lang
// sont figées au parsing.
func load(lang, name string, funcs template.FuncMap) (*template.Template, error) {
	key := lang + ":" + name
	tplCache.RLock()
	if t, ok := tplCache.m[key]; ok {
		tplCache.RUnlock()
		return t, nil
	}
	tplCache.RUnlock()

	layout := filepath.Join(baseDir, "layout.html")
	main := filepath.Join(baseDir, name)
	t, err := template.New("layout.html").Funcs(funcs).ParseFiles(layout, main)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	tplCache.Lock()
	tplCache.m[key] = t
	tplCache.Unlock()
	return t, nil
}

// Render écrit le template name dans la réponse, enveloppé par layout.html.
// Le rendu passe par un buffer pour ne jamais écrire de page à moitié.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	t, err := load(lang, name, Funcs(r))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
