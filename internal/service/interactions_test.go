package service

import (
	"errors"
	"testing"
)

// fakeStore is an in-memory StateStore for service tests.
type fakeStore struct {
	liked      []string
	saved      []string
	pending    []string
	onboarding bool
	visitorID  string
	failWrites bool
}

func (f *fakeStore) LikedIDs() []string { return f.liked }
func (f *fakeStore) SaveLikedIDs(ids []string) error {
	if f.failWrites {
		return errors.New("write failed")
	}
	f.liked = ids
	return nil
}
func (f *fakeStore) SavedIDs() []string { return f.saved }
func (f *fakeStore) SaveSavedIDs(ids []string) error {
	if f.failWrites {
		return errors.New("write failed")
	}
	f.saved = ids
	return nil
}
func (f *fakeStore) PendingIDs() []string { return f.pending }
func (f *fakeStore) SavePendingIDs(ids []string) error {
	if f.failWrites {
		return errors.New("write failed")
	}
	f.pending = ids
	return nil
}
func (f *fakeStore) OnboardingDone() bool { return f.onboarding }
func (f *fakeStore) SetOnboardingDone() error {
	f.onboarding = true
	return nil
}
func (f *fakeStore) VisitorID() (string, error) { return f.visitorID, nil }
func (f *fakeStore) Close() error               { return nil }

func TestToggleLikeRoundTrip(t *testing.T) {
	st := &fakeStore{}
	svc := NewInteractionService(st, nil)

	first := svc.ToggleLike("a1", 10)
	if !first.Liked || first.Count != 11 {
		t.Errorf("first toggle = %+v, want liked with count 11", first)
	}
	if !svc.IsLiked("a1") {
		t.Error("a1 should be liked")
	}
	if len(st.liked) != 1 || st.liked[0] != "a1" {
		t.Errorf("persisted liked = %v, want [a1]", st.liked)
	}
	if len(st.pending) != 1 {
		t.Errorf("persisted pending = %v, want [a1]", st.pending)
	}

	second := svc.ToggleLike("a1", first.Count)
	if second.Liked || second.Count != 10 {
		t.Errorf("second toggle = %+v, want unliked with count 10", second)
	}
	if svc.IsLiked("a1") {
		t.Error("a1 should no longer be liked")
	}
	if second.Token <= first.Token {
		t.Errorf("token did not advance: %d then %d", first.Token, second.Token)
	}
	if len(st.liked) != 0 {
		t.Errorf("persisted liked = %v, want empty", st.liked)
	}
}

func TestUnlikeClampsAtZero(t *testing.T) {
	svc := NewInteractionService(&fakeStore{liked: []string{"a1"}}, nil)

	result := svc.ToggleLike("a1", 0)
	if result.Liked {
		t.Error("toggle from liked should unlike")
	}
	if result.Count != 0 {
		t.Errorf("count = %d, want clamped 0", result.Count)
	}
}

func TestToggleSaveIsLocal(t *testing.T) {
	st := &fakeStore{}
	svc := NewInteractionService(st, nil)

	if !svc.ToggleSave("p1") {
		t.Error("first toggle should save")
	}
	if !svc.IsSaved("p1") {
		t.Error("p1 should be saved")
	}
	if len(st.saved) != 1 || st.saved[0] != "p1" {
		t.Errorf("persisted saved = %v, want [p1]", st.saved)
	}
	if len(st.pending) != 0 {
		t.Errorf("saving must not mark anything pending, got %v", st.pending)
	}

	if svc.ToggleSave("p1") {
		t.Error("second toggle should unsave")
	}
	if len(st.saved) != 0 {
		t.Errorf("persisted saved = %v, want empty", st.saved)
	}
}

func TestSavedStateSurvivesRestart(t *testing.T) {
	st := &fakeStore{}
	svc := NewInteractionService(st, nil)
	svc.ToggleSave("p1")
	svc.ToggleLike("p2", 5)

	// Fresh service over the same store models an app restart
	svc2 := NewInteractionService(st, nil)
	if !svc2.IsSaved("p1") {
		t.Error("saved state lost across restart")
	}
	if !svc2.IsLiked("p2") {
		t.Error("liked state lost across restart")
	}
}

func TestConfirmLikeDiscardsStaleToken(t *testing.T) {
	st := &fakeStore{}
	svc := NewInteractionService(st, nil)

	first := svc.ToggleLike("a1", 10)
	second := svc.ToggleLike("a1", first.Count)

	// Completion of the first, superseded request arrives late
	if svc.ConfirmLike("a1", first.Token, 11) {
		t.Error("stale confirmation should be discarded")
	}
	if len(st.pending) != 1 {
		t.Errorf("pending = %v, stale confirmation must not clear it", st.pending)
	}

	if !svc.ConfirmLike("a1", second.Token, 10) {
		t.Error("current confirmation should be accepted")
	}
	if len(st.pending) != 0 {
		t.Errorf("pending = %v, want cleared", st.pending)
	}
}

func TestFailLikeKeepsOptimisticState(t *testing.T) {
	st := &fakeStore{}
	svc := NewInteractionService(st, nil)

	result := svc.ToggleLike("a1", 10)
	svc.FailLike("a1", result.Token, errors.New("network down"))

	if !svc.IsLiked("a1") {
		t.Error("failed sync must not roll back the local state")
	}
	if len(st.pending) != 1 {
		t.Errorf("pending = %v, failure must keep the id pending", st.pending)
	}
}

func TestReplayReturnsPendingMutations(t *testing.T) {
	st := &fakeStore{
		liked:   []string{"a1"},
		pending: []string{"a1", "b2"},
	}
	svc := NewInteractionService(st, nil)

	replays := svc.Replay()
	if len(replays) != 2 {
		t.Fatalf("got %d replays, want 2", len(replays))
	}
	// a1 is in the liked set: replay as like. b2 is not: replay as unlike.
	if replays[0].ID != "a1" || !replays[0].Liked {
		t.Errorf("replay[0] = %+v, want a1 liked", replays[0])
	}
	if replays[1].ID != "b2" || replays[1].Liked {
		t.Errorf("replay[1] = %+v, want b2 unliked", replays[1])
	}

	// Replay tokens are current, so their confirmations are accepted
	if !svc.ConfirmLike("a1", replays[0].Token, 7) {
		t.Error("replay confirmation should be accepted")
	}
}

func TestForgetDropsPendingID(t *testing.T) {
	st := &fakeStore{pending: []string{"gone"}}
	svc := NewInteractionService(st, nil)

	svc.Forget("gone")
	if len(svc.Replay()) != 0 {
		t.Error("forgotten id still pending")
	}
	if len(st.pending) != 0 {
		t.Errorf("persisted pending = %v, want empty", st.pending)
	}
}

func TestPersistErrorsAreSwallowed(t *testing.T) {
	st := &fakeStore{failWrites: true}
	svc := NewInteractionService(st, nil)

	result := svc.ToggleLike("a1", 0)
	if !result.Liked || result.Count != 1 {
		t.Errorf("toggle = %+v, store failure must not block the mutation", result)
	}
	if !svc.IsLiked("a1") {
		t.Error("in-memory state must survive a failed write")
	}
}
