package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"odc-backoffice/internal/logger"
	"odc-backoffice/internal/models"
	"odc-backoffice/internal/repository"
	"odc-backoffice/internal/server"
	"odc-backoffice/internal/services"
	"odc-backoffice/internal/view"
)

// fakeUploader évite toute E/S réseau ; il mime les URL publiques du bucket.
type fakeUploader struct {
	uploads int
	deletes []string
}

func (f *fakeUploader) Upload(_ context.Context, folder, ext string, _ []byte) (string, error) {
	f.uploads++
	return "https://odc-images.s3.eu-west-3.amazonaws.com/" + folder + "/" + uuid.NewString() + ext, nil
}

func (f *fakeUploader) Delete(_ context.Context, url string) error {
	f.deletes = append(f.deletes, url)
	return nil
}

func newTestServer(t *testing.T) (http.Handler, *services.CatalogService, *fakeUploader) {
	t.Helper()
	logger.Init(io.Discard)
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Formation{}, &models.Event{}, &models.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	up := &fakeUploader{}
	catalog := services.NewCatalogService(
		repository.NewFormationRepository(db),
		repository.NewEventRepository(db),
		services.NewImageService(up),
	)
	settings := services.NewSettingsService(repository.NewSettingsRepository(db))
	h := server.NewRouter(server.Deps{
		Catalog:  catalog,
		Settings: settings,
		Ping: func(ctx context.Context) error {
			return db.WithContext(ctx).Exec("SELECT 1").Error
		},
	})
	return h, catalog, up
}

func formationForm() url.Values {
	return url.Values{
		"title":           {"Intro to Robotics"},
		"category":        {models.CategoryFablab},
		"description":     {"Construire son premier robot"},
		"dateStart":       {"2026-09-15"},
		"dateEnd":         {"2026-09-17"},
		"timeStart":       {"09:00"},
		"timeEnd":         {"17:00"},
		"city":            {models.CityRabat},
		"maxParticipants": {"12"},
	}
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateFormationViaForm(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := postForm(t, h, "/admin/formations/save", formationForm())
	if rec.Code != http.StatusCreated {
		t.Fatalf("statut = %d, corps %s", rec.Code, rec.Body.String())
	}
	var got models.Formation
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if got.ID == "" {
		t.Fatal("id serveur attendu")
	}
	if got.Status != models.StatusActive {
		t.Fatalf("statut = %q, attendu actif par défaut", got.Status)
	}
	if got.CurrentParticipants != 0 {
		t.Fatalf("currentParticipants = %d à la création", got.CurrentParticipants)
	}
	if got.Location != "ODC Rabat" {
		t.Fatalf("lieu par défaut = %q", got.Location)
	}
}

func TestCreateFormationValidation(t *testing.T) {
	h, catalog, up := newTestServer(t)

	form := formationForm()
	form.Set("title", "   ")
	rec := postForm(t, h, "/admin/formations/save", form)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("statut = %d, attendu 400", rec.Code)
	}
	var body struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if body.Field != "title" {
		t.Fatalf("champ fautif = %q", body.Field)
	}
	// rien ne doit avoir atteint la passerelle ni le bucket
	if up.uploads != 0 {
		t.Fatal("aucun upload attendu sur saisie invalide")
	}
	if err := catalog.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n := len(catalog.Formations()); n != 0 {
		t.Fatalf("%d formation(s) créée(s) malgré la validation", n)
	}
}

func TestCreateFormationWithImage(t *testing.T) {
	h, _, up := newTestServer(t)

	var imgBuf bytes.Buffer
	if err := jpeg.Encode(&imgBuf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vals := range formationForm() {
		_ = mw.WriteField(key, vals[0])
	}
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(imgBuf.Bytes()); err != nil {
		t.Fatalf("write: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/formations/save", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("statut = %d, corps %s", rec.Code, rec.Body.String())
	}
	if up.uploads != 1 {
		t.Fatalf("uploads = %d, attendu 1", up.uploads)
	}
	var got models.Formation
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if got.Image == nil || !strings.Contains(*got.Image, "formations/") {
		t.Fatalf("image = %v, URL bucket attendue", got.Image)
	}
}

func TestEditFormationKeepsID(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := postForm(t, h, "/admin/formations/save", formationForm())
	var created models.Formation
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("décodage: %v", err)
	}

	form := formationForm()
	form.Set("id", created.ID)
	form.Set("title", "Robotique avancée")
	rec = postForm(t, h, "/admin/formations/save", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("statut = %d, corps %s", rec.Code, rec.Body.String())
	}
	var updated models.Formation
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changé: %q -> %q", created.ID, updated.ID)
	}
	if updated.Title != "Robotique avancée" {
		t.Fatalf("titre = %q", updated.Title)
	}
}

func TestDeleteStaleFormation(t *testing.T) {
	h, _, up := newTestServer(t)

	form := url.Values{"id": {uuid.NewString()}}
	rec := postForm(t, h, "/admin/formations/delete", form)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("statut = %d, attendu 404", rec.Code)
	}
	if len(up.deletes) != 0 {
		t.Fatal("aucune suppression bucket attendue pour un id périmé")
	}
}

func TestEventTimeEndFallback(t *testing.T) {
	h, _, _ := newTestServer(t)

	form := url.Values{
		"title":           {"Conférence IA"},
		"speaker":         {"A. Benani"},
		"date":            {"2026-10-01"},
		"timeStart":       {"18:00"},
		"city":            {models.CityAgadir},
		"maxParticipants": {"80"},
	}
	rec := postForm(t, h, "/admin/events/save", form)
	if rec.Code != http.StatusCreated {
		t.Fatalf("statut = %d, corps %s", rec.Code, rec.Body.String())
	}
	var got models.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if got.TimeEnd != "18:00" {
		t.Fatalf("timeEnd = %q, attendu l'heure de début", got.TimeEnd)
	}
	if got.Location != "ODC Agadir" {
		t.Fatalf("lieu par défaut = %q", got.Location)
	}
}

func TestFormationListFilters(t *testing.T) {
	h, _, _ := newTestServer(t)

	rabat := formationForm()
	postForm(t, h, "/admin/formations/save", rabat)
	agadir := formationForm()
	agadir.Set("title", "Atelier impression 3D")
	agadir.Set("city", models.CityAgadir)
	postForm(t, h, "/admin/formations/save", agadir)

	rec := getJSON(t, h, "/admin/formations?city="+models.CityAgadir)
	if rec.Code != http.StatusOK {
		t.Fatalf("statut = %d", rec.Code)
	}
	var body struct {
		Items []models.Formation `json:"items"`
		Total int                `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if body.Total != 1 || len(body.Items) != 1 {
		t.Fatalf("total = %d, items = %d", body.Total, len(body.Items))
	}
	if body.Items[0].City != models.CityAgadir {
		t.Fatalf("ville = %q", body.Items[0].City)
	}

	// la recherche couvre aussi le nom affiché de la ville
	rec = getJSON(t, h, "/admin/formations?q=Agadir")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if len(body.Items) != 1 {
		t.Fatalf("recherche par ville affichée: %d résultat(s)", len(body.Items))
	}
}

func TestLandingShowsOnlyActive(t *testing.T) {
	h, _, _ := newTestServer(t)

	active := formationForm()
	postForm(t, h, "/admin/formations/save", active)
	inactive := formationForm()
	inactive.Set("title", "Session archivée")
	inactive.Set("status", models.StatusInactive)
	postForm(t, h, "/admin/formations/save", inactive)

	rec := getJSON(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("statut = %d", rec.Code)
	}
	var body struct {
		Formations []models.Formation `json:"formations"`
		Settings   models.Settings    `json:"settings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if len(body.Formations) != 1 {
		t.Fatalf("%d formation(s) sur la vitrine, attendu 1 active", len(body.Formations))
	}
	// les réglages par défaut sont servis même sans ligne en base
	if len(body.Settings.Centers) != 4 {
		t.Fatalf("%d centre(s) par défaut", len(body.Settings.Centers))
	}
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	h, _, _ := newTestServer(t)

	form := url.Values{
		"siteTitle":     {"ODC — Septembre"},
		"heroTitle":     {"Orange Digital Center"},
		"heroSubtitle":  {"Programme de rentrée"},
		"contactEmail":  {"odc@orange.ma"},
		"centerName":    {"ODC Rabat", "ODC Agadir"},
		"centerAddress": {"Technopolis", "Founty"},
		"centerPhone":   {"", "05 28 00 00 00"},
	}
	rec := postForm(t, h, "/admin/settings/save", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("statut = %d, corps %s", rec.Code, rec.Body.String())
	}

	rec = getJSON(t, h, "/admin/settings")
	var got models.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("décodage: %v", err)
	}
	if got.SiteTitle != "ODC — Septembre" {
		t.Fatalf("titre = %q", got.SiteTitle)
	}
	if len(got.Centers) != 2 || got.Centers[1].Phone != "05 28 00 00 00" {
		t.Fatalf("centres = %+v", got.Centers)
	}
}

func TestFormationQRCode(t *testing.T) {
	h, _, _ := newTestServer(t)

	form := formationForm()
	form.Set("registrationLink", "https://forms.example.com/robotics")
	rec := postForm(t, h, "/admin/formations/save", form)
	var created models.Formation
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("décodage: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/formations/"+created.ID+"/qr", nil)
	qr := httptest.NewRecorder()
	h.ServeHTTP(qr, req)
	if qr.Code != http.StatusOK {
		t.Fatalf("statut = %d", qr.Code)
	}
	if ct := qr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content-type = %q", ct)
	}
	if qr.Body.Len() == 0 {
		t.Fatal("PNG vide")
	}
}

func TestQRCodeWithoutLink(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := postForm(t, h, "/admin/formations/save", formationForm())
	var created models.Formation
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("décodage: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/formations/"+created.ID+"/qr", nil)
	req.Header.Set("Accept", "application/json")
	qr := httptest.NewRecorder()
	h.ServeHTTP(qr, req)
	if qr.Code != http.StatusNotFound {
		t.Fatalf("statut = %d, attendu 404 sans lien d'inscription", qr.Code)
	}
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestServer(t)
	rec := getJSON(t, h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("statut = %d", rec.Code)
	}
}

func TestNewFormationPageHTML(t *testing.T) {
	h, _, _ := newTestServer(t)
	view.SetBaseDir("../../templates")

	req := httptest.NewRequest(http.MethodGet, "/admin/formations/new", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("statut = %d, corps %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Nouvelle formation") {
		t.Fatal("titre du formulaire absent du rendu")
	}
}
