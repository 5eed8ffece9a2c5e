package score

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFixtureProducer(t *testing.T) {
	p := NewFixtureProducer([]Scored{
		{ImageID: "construction_site_001.jpg", Score: 0.87},
		{ImageID: "construction_site_002.jpg", Score: 0.74},
	})
	if p.Len() != 2 {
		t.Fatalf("len = %d", p.Len())
	}

	got, err := p.Produce(context.Background(), Ref{ID: "construction_site_001.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.87 {
		t.Errorf("score = %v, want 0.87", got)
	}

	if _, err := p.Produce(context.Background(), Ref{ID: "missing.jpg"}); err == nil {
		t.Error("unknown image must be an error")
	}
}

func TestLoadFixture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.json")
	fixture := `[
	  {"image": "a.jpg", "score": 0.69},
	  {"image": "b.jpg", "score": 0.81}
	]`
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFixture(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := p.Produce(context.Background(), Ref{ID: "b.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.81 {
		t.Errorf("score = %v", got)
	}
}

func TestLoadFixture_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Error("malformed fixture must be an error")
	}
}
