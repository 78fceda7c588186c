package service

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/Pavan1214/prompts/internal/domain"
)

// LikeToggle is the synchronous, local result of toggling a like. The
// remote counter mutation is dispatched separately by the caller.
type LikeToggle struct {
	Count int  // Optimistic count to display immediately
	Liked bool // Membership after the toggle
	Token int  // In-flight token for the remote call
}

// PendingMutation is an unconfirmed like/unlike carried over from a
// previous session, to be replayed against the remote service.
type PendingMutation struct {
	ID    string
	Liked bool // Desired state: true = like, false = unlike
	Token int
}

// InteractionService owns the visitor's liked/saved id sets. Set
// membership is the only signal driving icon rendering and the saved
// view. Every mutation is applied in memory first, then written
// through to the store in full before any remote call is dispatched.
type InteractionService struct {
	store  domain.StateStore
	logger *slog.Logger

	mu      sync.Mutex
	liked   map[string]struct{}
	saved   map[string]struct{}
	pending map[string]struct{} // ids with an unconfirmed remote mutation
	tokens  map[string]int      // per-id in-flight request token
}

// NewInteractionService loads the persisted sets from the store.
// Corrupt or missing state reads back as empty.
func NewInteractionService(store domain.StateStore, logger *slog.Logger) *InteractionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &InteractionService{
		store:   store,
		logger:  logger,
		liked:   toSet(store.LikedIDs()),
		saved:   toSet(store.SavedIDs()),
		pending: toSet(store.PendingIDs()),
		tokens:  make(map[string]int),
	}
	s.logger.Debug("loaded interaction state",
		"liked", len(s.liked), "saved", len(s.saved), "pending", len(s.pending))
	return s
}

func (s *InteractionService) IsLiked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[id]
	return ok
}

func (s *InteractionService) IsSaved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saved[id]
	return ok
}

// Interaction returns the visitor's state for a single item.
func (s *InteractionService) Interaction(id string) domain.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, liked := s.liked[id]
	_, saved := s.saved[id]
	return domain.Interaction{Liked: liked, Saved: saved}
}

// ToggleLike flips like membership for id and returns the optimistic
// count to display. The local mutation and the write-through persist
// complete before the caller dispatches the remote call; the UI never
// waits on the network.
func (s *InteractionService) ToggleLike(id string, current int) LikeToggle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result LikeToggle
	if _, ok := s.liked[id]; ok {
		delete(s.liked, id)
		result.Count = current - 1
		if result.Count < 0 {
			result.Count = 0
		}
	} else {
		s.liked[id] = struct{}{}
		result.Liked = true
		result.Count = current + 1
	}

	s.pending[id] = struct{}{}
	s.tokens[id]++
	result.Token = s.tokens[id]

	s.persistLiked()
	s.persistPending()
	return result
}

// ToggleSave flips save membership for id and returns the new state.
// Saving is purely local; there is no remote counterpart.
func (s *InteractionService) ToggleSave(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var saved bool
	if _, ok := s.saved[id]; ok {
		delete(s.saved, id)
	} else {
		s.saved[id] = struct{}{}
		saved = true
	}

	s.persistSaved()
	return saved
}

// ConfirmLike records that the remote counter mutation for id
// completed with serverCount. A completion carrying a stale token has
// been superseded by a newer toggle and is discarded: the return value
// reports whether the server count may be applied to the display.
func (s *InteractionService) ConfirmLike(id string, token, serverCount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.tokens[id] {
		s.logger.Debug("discarding superseded like confirmation", "id", id, "token", token)
		return false
	}

	delete(s.pending, id)
	s.persistPending()
	return true
}

// FailLike records that the remote mutation for id failed. The local
// optimistic state stands; the id stays pending so the next startup's
// reconciliation pass can replay it.
func (s *InteractionService) FailLike(id string, token int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.tokens[id] {
		return
	}
	s.logger.Warn("like sync failed, keeping optimistic state", "id", id, "error", err)
}

// Replay returns the unconfirmed mutations carried over from previous
// sessions, each with a fresh token, for the startup reconciliation
// pass. Ids no longer present in the feed should be dropped by the
// caller via Forget.
func (s *InteractionService) Replay() []PendingMutation {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	replays := make([]PendingMutation, 0, len(ids))
	for _, id := range ids {
		s.tokens[id]++
		_, liked := s.liked[id]
		replays = append(replays, PendingMutation{ID: id, Liked: liked, Token: s.tokens[id]})
	}
	return replays
}

// Forget drops a pending id that can no longer be reconciled, e.g.
// because the item left the remote collection.
func (s *InteractionService) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return
	}
	delete(s.pending, id)
	s.persistPending()
}

// === Write-through persistence ===
// A failed write is logged and otherwise swallowed: browsing must
// never be interrupted by the local store.

func (s *InteractionService) persistLiked() {
	if err := s.store.SaveLikedIDs(toSorted(s.liked)); err != nil {
		s.logger.Error("failed to persist liked set", "error", err)
	}
}

func (s *InteractionService) persistSaved() {
	if err := s.store.SaveSavedIDs(toSorted(s.saved)); err != nil {
		s.logger.Error("failed to persist saved set", "error", err)
	}
}

func (s *InteractionService) persistPending() {
	if err := s.store.SavePendingIDs(toSorted(s.pending)); err != nil {
		s.logger.Error("failed to persist pending set", "error", err)
	}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func toSorted(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
