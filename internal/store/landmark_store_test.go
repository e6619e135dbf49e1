package store

import (
	"testing"

	"github.com/cephaloview/ceph-backend-go/internal/models"
)

func newTestStore() *LandmarkStore {
	return New(models.LandmarksCollection{
		ID:        "col-1",
		PatientID: "patient-1",
		ImageID:   "image-1",
		Landmarks: []models.Landmark{
			{ID: "lm-1", Name: "Sella", Abbreviation: "S", X: 100, Y: 100},
		},
	})
}

func TestAddOverwritesOnCollidingID(t *testing.T) {
	s := newTestStore()

	s.Add(models.Landmark{ID: "lm-1", Name: "Sella", X: 110, Y: 105}, "user-a")

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (add must overwrite, not duplicate)", s.Len())
	}
	lm, ok := s.Get("lm-1")
	if !ok {
		t.Fatal("landmark lm-1 missing")
	}
	if lm.X != 110 || lm.Y != 105 {
		t.Fatalf("landmark = (%v, %v), want (110, 105)", lm.X, lm.Y)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	s := newTestStore()
	moved := models.Landmark{ID: "lm-1", Name: "Sella", X: 120, Y: 95}

	s.Update(moved, "user-a")
	once := s.All()

	s.Update(moved, "user-a")
	twice := s.All()

	if len(once) != 1 || len(twice) != 1 {
		t.Fatalf("lengths = %d, %d, want 1, 1", len(once), len(twice))
	}
	if once[0] != twice[0] {
		t.Fatalf("applying update twice changed state: %+v vs %+v", once[0], twice[0])
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	s := newTestStore()

	s.Update(models.Landmark{ID: "ghost", Name: "Nasion", X: 1, Y: 1}, "user-a")

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if _, ok := s.Get("ghost"); ok {
		t.Fatal("update of unknown id must not insert")
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	s := newTestStore()

	s.Remove("ghost", "user-a")
	s.Remove("ghost", "user-a")

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore()

	s.Remove("lm-1", "user-a")

	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestMutationRefreshesCollectionMetadata(t *testing.T) {
	s := newTestStore()
	before := s.Snapshot()

	s.Add(models.Landmark{ID: "lm-2", Name: "Nasion", X: 150, Y: 90}, "user-b")
	after := s.Snapshot()

	if after.LastModifiedBy != "user-b" {
		t.Fatalf("LastModifiedBy = %q, want %q", after.LastModifiedBy, "user-b")
	}
	if after.UpdatedAt < before.UpdatedAt {
		t.Fatalf("UpdatedAt went backwards: %d -> %d", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestStore()
	snap := s.Snapshot()

	s.Add(models.Landmark{ID: "lm-2", Name: "Nasion", X: 150, Y: 90}, "user-a")

	if len(snap.Landmarks) != 1 {
		t.Fatalf("snapshot landmarks = %d, want 1 (must not alias live state)", len(snap.Landmarks))
	}
}
