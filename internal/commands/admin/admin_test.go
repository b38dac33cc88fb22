package admincmd

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-cms-site/sections"
)

type stubStore struct {
	savedDirectors  []content.Director
	deletedDirector []int
	savedGalleries  []pages.Gallery
	deletedGallery  []int
	updates         []interfaces.SectionUpdate
}

func (s *stubStore) ListDirectors(context.Context) ([]content.Director, error) { return nil, nil }
func (s *stubStore) GetDirector(context.Context, int) (*content.Director, error) {
	return nil, nil
}
func (s *stubStore) SaveDirector(_ context.Context, d content.Director) (*content.Director, error) {
	s.savedDirectors = append(s.savedDirectors, d)
	return &d, nil
}
func (s *stubStore) DeleteDirector(_ context.Context, id int) error {
	s.deletedDirector = append(s.deletedDirector, id)
	return nil
}
func (s *stubStore) ListAllGalleries(context.Context) ([]pages.Gallery, error) { return nil, nil }
func (s *stubStore) GetGallery(context.Context, int) (*pages.Gallery, error)   { return nil, nil }
func (s *stubStore) SaveGallery(_ context.Context, g pages.Gallery) (*pages.Gallery, error) {
	s.savedGalleries = append(s.savedGalleries, g)
	return &g, nil
}
func (s *stubStore) DeleteGallery(_ context.Context, id int) error {
	s.deletedGallery = append(s.deletedGallery, id)
	return nil
}
func (s *stubStore) UpdateSection(_ context.Context, u interfaces.SectionUpdate) (*sections.Section, error) {
	s.updates = append(s.updates, u)
	return &sections.Section{ID: u.ID}, nil
}

func TestSaveDirectorValidation(t *testing.T) {
	store := &stubStore{}
	handler := NewSaveDirectorHandler(store, nil)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(-1, 0, 0)
	invalid := []content.Director{
		{Name: "", Position: "Načelnik"},
		{Name: "Ana Horvat", Position: "Načelnica", Email: "not-an-email"},
		{Name: "Ana Horvat", Position: "Načelnica", TermStart: &start, TermEnd: &end},
	}
	for i, d := range invalid {
		if err := handler.Execute(context.Background(), SaveDirectorCommand{Director: d}); !commands.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if len(store.savedDirectors) != 0 {
		t.Fatalf("invalid directors must not be saved")
	}

	valid := content.Director{Name: "Ana Horvat", Position: "Načelnica", Email: "ana@opcina.hr"}
	if err := handler.Execute(context.Background(), SaveDirectorCommand{Director: valid}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(store.savedDirectors) != 1 {
		t.Fatalf("expected director saved")
	}
}

func TestDeleteDirectorRequiresID(t *testing.T) {
	store := &stubStore{}
	handler := NewDeleteDirectorHandler(store, nil)
	if err := handler.Execute(context.Background(), DeleteDirectorCommand{}); !commands.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := handler.Execute(context.Background(), DeleteDirectorCommand{ID: 4}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(store.deletedDirector) != 1 || store.deletedDirector[0] != 4 {
		t.Fatalf("unexpected deletes %v", store.deletedDirector)
	}
}

func TestSaveGalleryDerivesSlug(t *testing.T) {
	store := &stubStore{}
	handler := NewSaveGalleryHandler(store, nil)

	err := handler.Execute(context.Background(), SaveGalleryCommand{Gallery: pages.Gallery{
		PageID: 2,
		Title:  "Otvaranje parka",
		Images: []pages.GalleryImage{{Image: "park-1.jpg"}},
	}})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(store.savedGalleries) != 1 || store.savedGalleries[0].Slug != "otvaranje-parka" {
		t.Fatalf("expected derived slug, got %+v", store.savedGalleries)
	}

	err = handler.Execute(context.Background(), SaveGalleryCommand{Gallery: pages.Gallery{
		PageID: 2,
		Title:  "Prazno",
		Images: []pages.GalleryImage{{Caption: "bez slike"}},
	}})
	if !commands.IsValidation(err) {
		t.Fatalf("expected validation error for image without file, got %v", err)
	}
}

func TestUpdateSectionValidatesPayloadSchema(t *testing.T) {
	store := &stubStore{}
	handler := NewUpdateSectionHandler(store, nil)

	bad := interfaces.SectionUpdate{ID: 1, PageID: 2, Type: sections.TypeCTAOne, Data: json.RawMessage(`{"title":"x","unexpected":true}`)}
	if err := handler.Execute(context.Background(), UpdateSectionCommand{Update: bad}); !commands.IsValidation(err) {
		t.Fatalf("expected validation error for schema violation, got %v", err)
	}

	unknown := interfaces.SectionUpdate{ID: 1, PageID: 2, Type: "slider"}
	if err := handler.Execute(context.Background(), UpdateSectionCommand{Update: unknown}); !commands.IsValidation(err) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}

	good := interfaces.SectionUpdate{ID: 1, PageID: 2, Type: sections.TypeCTAOne, IsVisible: true, Data: json.RawMessage(`{"title":"Uključite se","buttonText":"Kontakt","buttonLink":"/kontakt"}`)}
	if err := handler.Execute(context.Background(), UpdateSectionCommand{Update: good}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(store.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(store.updates))
	}
}
