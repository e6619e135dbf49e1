package repository

import (
	"database/sql"
	"encoding/json"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/cephaloview/ceph-backend-go/internal/database"
	"github.com/cephaloview/ceph-backend-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAnalysisCRUD(t *testing.T) {
	repo := NewAnalysisRepository(openTestDB(t))

	a := &models.Analysis{
		ID:         "an-1",
		PatientID:  "patient-1",
		ImageID:    "image-1",
		TemplateID: "steiner",
		Landmarks: []models.Landmark{
			{ID: "lm-1", Name: "Sella", X: 100, Y: 100},
		},
		Results: json.RawMessage(`{"sna": 82.1}`),
	}
	if err := repo.Create(a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID("an-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("analysis not found after create")
	}
	if got.PatientID != "patient-1" || got.TemplateID != "steiner" {
		t.Fatalf("stored analysis = %+v", got)
	}
	if len(got.Landmarks) != 1 || got.Landmarks[0].ID != "lm-1" {
		t.Fatalf("landmarks = %+v, want lm-1", got.Landmarks)
	}
	if got.CreatedAt == "" {
		t.Fatal("created_at not populated")
	}

	updated, err := repo.Update("an-1", &models.AnalysisRequest{
		PatientID:  "patient-1",
		ImageID:    "image-1",
		TemplateID: "tweed",
		Landmarks:  got.Landmarks,
		Results:    json.RawMessage(`{"fma": 25.0}`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated {
		t.Fatal("update reported no matching row")
	}

	got, err = repo.GetByID("an-1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.TemplateID != "tweed" {
		t.Fatalf("template after update = %s, want tweed", got.TemplateID)
	}
}

func TestAnalysisNotFound(t *testing.T) {
	repo := NewAnalysisRepository(openTestDB(t))

	got, err := repo.GetByID("ghost")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil for unknown id", got)
	}

	updated, err := repo.Update("ghost", &models.AnalysisRequest{
		PatientID: "p", ImageID: "i", TemplateID: "steiner",
		Results: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated {
		t.Fatal("update of unknown id reported success")
	}
}

func TestAnalysisListFilters(t *testing.T) {
	repo := NewAnalysisRepository(openTestDB(t))

	for _, a := range []*models.Analysis{
		{ID: "an-1", PatientID: "patient-1", ImageID: "image-1", TemplateID: "steiner", Results: json.RawMessage(`{}`)},
		{ID: "an-2", PatientID: "patient-1", ImageID: "image-2", TemplateID: "tweed", Results: json.RawMessage(`{}`)},
		{ID: "an-3", PatientID: "patient-2", ImageID: "image-3", TemplateID: "downs", Results: json.RawMessage(`{}`)},
	} {
		if err := repo.Create(a); err != nil {
			t.Fatalf("create %s: %v", a.ID, err)
		}
	}

	got, total, err := repo.List(models.AnalysisFilter{PatientID: "patient-1", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("list = %d rows, total %d, want 2/2", len(got), total)
	}

	got, total, err = repo.List(models.AnalysisFilter{PatientID: "patient-1", ImageID: "image-2", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].ID != "an-2" {
		t.Fatalf("filtered list = %+v, want an-2 only", got)
	}
}

func TestSeedDataRoundTrip(t *testing.T) {
	repo := NewSeedLandmarkRepository(openTestDB(t))

	conf := 0.92
	data := &models.SeedLandmarksData{
		Points: []models.SeedPoint{
			{Landmark: "Sella", Coordinates: models.Coordinates{X: 100, Y: 100}, Confidence: &conf},
			{Landmark: "Nasion", Coordinates: models.Coordinates{X: 150, Y: 90}},
		},
		Box: models.BoundingBox{Left: 40, Right: 220, Top: 30, Bottom: 260},
	}

	if err := repo.SaveSeedData("image-1", data); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetSeedData("image-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(got.Points))
	}

	byName := make(map[string]models.SeedPoint)
	for _, p := range got.Points {
		byName[p.Landmark] = p
	}
	sella := byName["Sella"]
	if sella.Coordinates.X != 100 || sella.Confidence == nil || *sella.Confidence != 0.92 {
		t.Fatalf("sella = %+v, want x=100 confidence=0.92", sella)
	}
	if byName["Nasion"].Confidence != nil {
		t.Fatal("nasion confidence should stay unset")
	}
	if got.Box.Right != 220 || got.Box.Bottom != 260 {
		t.Fatalf("box = %+v", got.Box)
	}

	// Saving again replaces rather than appends
	if err := repo.SaveSeedData("image-1", data); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err = repo.GetSeedData("image-1")
	if err != nil {
		t.Fatalf("get after resave: %v", err)
	}
	if len(got.Points) != 2 {
		t.Fatalf("points after resave = %d, want 2", len(got.Points))
	}
}

func TestSeedDataEmptyImage(t *testing.T) {
	repo := NewSeedLandmarkRepository(openTestDB(t))

	got, err := repo.GetSeedData("unknown-image")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Points) != 0 {
		t.Fatalf("points = %d, want 0", len(got.Points))
	}
}
