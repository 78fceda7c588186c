package store

import (
	"testing"

	bolt "go.etcd.io/bbolt"
)

func TestInteractionSetsRoundTrip(t *testing.T) {
	s, err := NewVisitorStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewVisitorStore: %v", err)
	}
	defer s.Close()

	if got := s.LikedIDs(); len(got) != 0 {
		t.Fatalf("expected empty liked set, got %v", got)
	}

	liked := []string{"a1", "b2", "c3"}
	if err := s.SaveLikedIDs(liked); err != nil {
		t.Fatalf("SaveLikedIDs: %v", err)
	}
	saved := []string{"b2"}
	if err := s.SaveSavedIDs(saved); err != nil {
		t.Fatalf("SaveSavedIDs: %v", err)
	}
	pending := []string{"c3"}
	if err := s.SavePendingIDs(pending); err != nil {
		t.Fatalf("SavePendingIDs: %v", err)
	}

	if got := s.LikedIDs(); len(got) != 3 || got[0] != "a1" {
		t.Errorf("LikedIDs = %v, want %v", got, liked)
	}
	if got := s.SavedIDs(); len(got) != 1 || got[0] != "b2" {
		t.Errorf("SavedIDs = %v, want %v", got, saved)
	}
	if got := s.PendingIDs(); len(got) != 1 || got[0] != "c3" {
		t.Errorf("PendingIDs = %v, want %v", got, pending)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewVisitorStore(dir)
	if err != nil {
		t.Fatalf("NewVisitorStore: %v", err)
	}
	if err := s.SaveSavedIDs([]string{"x1", "x2"}); err != nil {
		t.Fatalf("SaveSavedIDs: %v", err)
	}
	if err := s.SetOnboardingDone(); err != nil {
		t.Fatalf("SetOnboardingDone: %v", err)
	}
	id1, err := s.VisitorID()
	if err != nil {
		t.Fatalf("VisitorID: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewVisitorStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if got := s2.SavedIDs(); len(got) != 2 {
		t.Errorf("SavedIDs after reopen = %v, want 2 ids", got)
	}
	if !s2.OnboardingDone() {
		t.Error("onboarding flag lost across reopen")
	}
	id2, err := s2.VisitorID()
	if err != nil {
		t.Fatalf("VisitorID after reopen: %v", err)
	}
	if id1 != id2 {
		t.Errorf("visitor id changed across reopen: %q vs %q", id1, id2)
	}
}

func TestVisitorIDGeneratedOnce(t *testing.T) {
	s, err := NewVisitorStore("")
	if err != nil {
		t.Fatalf("NewVisitorStore: %v", err)
	}
	defer s.Close()

	first, err := s.VisitorID()
	if err != nil {
		t.Fatalf("VisitorID: %v", err)
	}
	if first == "" {
		t.Fatal("expected a generated visitor id")
	}
	second, err := s.VisitorID()
	if err != nil {
		t.Fatalf("VisitorID: %v", err)
	}
	if first != second {
		t.Errorf("visitor id not stable: %q vs %q", first, second)
	}
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := NewVisitorStore("")
	if err != nil {
		t.Fatalf("NewVisitorStore: %v", err)
	}
	defer s.Close()

	if err := s.SaveLikedIDs([]string{"m1"}); err != nil {
		t.Fatalf("SaveLikedIDs: %v", err)
	}
	if got := s.LikedIDs(); len(got) != 1 || got[0] != "m1" {
		t.Errorf("LikedIDs = %v, want [m1]", got)
	}
	if s.OnboardingDone() {
		t.Error("onboarding flag should default to false")
	}
}

func TestCorruptValueReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()

	s, err := NewVisitorStore(dir)
	if err != nil {
		t.Fatalf("NewVisitorStore: %v", err)
	}
	if err := s.SaveLikedIDs([]string{"ok"}); err != nil {
		t.Fatalf("SaveLikedIDs: %v", err)
	}

	// Clobber the stored value with invalid JSON
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketInteractions).Put([]byte(keyLiked), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("corrupting value: %v", err)
	}
	s.Close()

	s2, err := NewVisitorStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if got := s2.LikedIDs(); len(got) != 0 {
		t.Errorf("corrupt value should read as empty, got %v", got)
	}
	if s2.OnboardingDone() {
		t.Error("missing flag should read as false")
	}
}
