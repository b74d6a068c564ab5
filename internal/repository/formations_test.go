package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"odc-backoffice/internal/apperr"
	"odc-backoffice/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Une base mémoire distincte par test pour éviter les collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Formation{}, &models.Event{}, &models.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func draftFormation() *models.Formation {
	link := "https://forms.example.com/robotics"
	return &models.Formation{
		Title:            "Intro to Robotics",
		Category:         models.CategoryFablab,
		Description:      "Construire son premier robot",
		DateStart:        "2026-09-15",
		DateEnd:          "2026-09-15",
		TimeStart:        "09:00",
		TimeEnd:          "17:00",
		City:             models.CityRabat,
		Location:         "Atelier FabLab",
		MaxParticipants:  12,
		RegistrationLink: &link,
	}
}

func TestSaveNewFormationDefaults(t *testing.T) {
	repo := NewFormationRepository(setupTestDB(t))
	ctx := context.Background()

	draft := draftFormation()
	draft.CurrentParticipants = 7 // jamais repris du client à la création

	saved, err := repo.Save(ctx, draft)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" || saved.ID == draft.ID {
		t.Fatalf("id serveur attendu, obtenu %q", saved.ID)
	}
	if saved.CurrentParticipants != 0 {
		t.Fatalf("current_participants attendu 0, obtenu %d", saved.CurrentParticipants)
	}
	if saved.Status != models.StatusActive {
		t.Fatalf("status défaut attendu active, obtenu %q", saved.Status)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatalf("timestamps serveur absents")
	}
}

func TestSaveRejectsMalformedClientID(t *testing.T) {
	repo := NewFormationRepository(setupTestDB(t))
	ctx := context.Background()

	draft := draftFormation()
	draft.ID = "local-123" // id non-UUID fabriqué côté client

	saved, err := repo.Save(ctx, draft)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "local-123" {
		t.Fatalf("l'id mal formé ne doit jamais atteindre la base")
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("une seule ligne attendue (pas de doublon), obtenu %d", len(list))
	}
}

func TestRoundTripAllContractFields(t *testing.T) {
	repo := NewFormationRepository(setupTestDB(t))
	ctx := context.Background()

	saved, err := repo.Save(ctx, draftFormation())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("attendu 1 formation, obtenu %d", len(list))
	}
	got := list[0]
	if got.ID != saved.ID ||
		got.Title != saved.Title ||
		got.Category != saved.Category ||
		got.Description != saved.Description ||
		got.DateStart != saved.DateStart ||
		got.DateEnd != saved.DateEnd ||
		got.TimeStart != saved.TimeStart ||
		got.TimeEnd != saved.TimeEnd ||
		got.City != saved.City ||
		got.Location != saved.Location ||
		got.MaxParticipants != saved.MaxParticipants ||
		got.CurrentParticipants != saved.CurrentParticipants ||
		got.Status != saved.Status {
		t.Fatalf("aller-retour avec perte:\nsauvé  %+v\nrelu   %+v", saved, got)
	}
	if got.RegistrationLink == nil || *got.RegistrationLink != *saved.RegistrationLink {
		t.Fatalf("registration_link perdu à la relecture")
	}
}

func TestUpdatePreservesParticipantsAndCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormationRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, draftFormation())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	// inscriptions arrivées entre temps (écrites côté serveur)
	if err := db.Model(&models.Formation{ID: saved.ID}).Update("current_participants", 5).Error; err != nil {
		t.Fatalf("seed participants: %v", err)
	}

	edit := *saved
	edit.Title = "Intro to Robotics — session 2"
	edit.CurrentParticipants = 99 // tentative client, doit être ignorée

	updated, err := repo.Save(ctx, &edit)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Intro to Robotics — session 2" {
		t.Fatalf("titre non mis à jour: %q", updated.Title)
	}
	if updated.CurrentParticipants != 5 {
		t.Fatalf("current_participants attendu 5 (valeur stockée), obtenu %d", updated.CurrentParticipants)
	}
	if !updated.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("created_at modifié par l'édition")
	}
}

func TestListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormationRepository(db)
	ctx := context.Background()

	first, err := repo.Save(ctx, draftFormation())
	if err != nil {
		t.Fatalf("save 1: %v", err)
	}
	second := draftFormation()
	second.Title = "Arduino pour débutants"
	saved2, err := repo.Save(ctx, second)
	if err != nil {
		t.Fatalf("save 2: %v", err)
	}
	// forcer des created_at distincts, la résolution horloge ne suffit pas
	old := time.Now().Add(-time.Hour)
	if err := db.Model(&models.Formation{ID: first.ID}).Update("created_at", old).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != saved2.ID {
		t.Fatalf("ordre created_at DESC attendu, obtenu %v puis %v", list[0].Title, list[1].Title)
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	repo := NewFormationRepository(setupTestDB(t))
	err := repo.Delete(context.Background(), "9e107d9d-5a5e-4c3f-8f2a-1b2c3d4e5f60")
	if _, ok := apperr.IsNotFound(err); !ok {
		t.Fatalf("attendu NotFoundError, obtenu %v", err)
	}
}

func TestLocationDefaultsToCenterName(t *testing.T) {
	repo := NewFormationRepository(setupTestDB(t))
	draft := draftFormation()
	draft.Location = ""
	draft.City = models.CityBenMsik
	saved, err := repo.Save(context.Background(), draft)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Location != "ODC Ben M'sik" {
		t.Fatalf("location défaut attendue 'ODC Ben M'sik', obtenu %q", saved.Location)
	}
}
