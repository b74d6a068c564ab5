package storage

import (
	"testing"

	"odc-backoffice/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		StorageBucket:    "odc-images",
		StorageRegion:    "eu-west-3",
		StorageAccessKey: "ak",
		StorageSecretKey: "sk",
	}
}

func TestPublicBaseDerivedFromRegion(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.publicBase != "https://odc-images.s3.eu-west-3.amazonaws.com" {
		t.Fatalf("base publique inattendue: %s", s.publicBase)
	}
}

func TestPublicBaseFromEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.StorageEndpoint = "https://storage.exemple.ma"
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.publicBase != "https://storage.exemple.ma/odc-images" {
		t.Fatalf("base publique inattendue: %s", s.publicBase)
	}
}

func TestKeyFromURL(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	key, ok := s.KeyFromURL("https://odc-images.s3.eu-west-3.amazonaws.com/events/abc.jpg")
	if !ok || key != "events/abc.jpg" {
		t.Fatalf("clé attendue events/abc.jpg, obtenu %q (ok=%v)", key, ok)
	}
	// URL path-style d'un stockage compatible
	key, ok = s.KeyFromURL("https://storage.exemple.ma/odc-images/formations/x.png")
	if !ok || key != "formations/x.png" {
		t.Fatalf("clé path-style attendue, obtenu %q (ok=%v)", key, ok)
	}
	// URL étrangère : ignorée
	if _, ok := s.KeyFromURL("https://cdn.autre-site.com/photo.jpg"); ok {
		t.Fatalf("une URL étrangère au bucket ne doit pas produire de clé")
	}
}
