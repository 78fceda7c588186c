package domain

import "context"

// FeedRepository is the remote feed service: the item collection plus
// the like counter mutations.
type FeedRepository interface {
	// FetchAll returns the full item collection.
	FetchAll(ctx context.Context) ([]FeedItem, error)

	// Like increments the remote like counter and returns the updated count.
	Like(ctx context.Context, id string) (int, error)

	// Unlike decrements the remote like counter and returns the updated count.
	Unlike(ctx context.Context, id string) (int, error)
}

// StateStore persists the visitor's interaction state across sessions.
// A malformed or missing value always reads back as the empty default,
// never as an error.
type StateStore interface {
	// === Interaction sets (full-set write-through) ===
	LikedIDs() []string
	SaveLikedIDs(ids []string) error

	SavedIDs() []string
	SaveSavedIDs(ids []string) error

	// Pending ids are like/unlike mutations not yet confirmed by the
	// remote service, kept for the reconciliation pass on next startup.
	PendingIDs() []string
	SavePendingIDs(ids []string) error

	// === One-shot flags ===
	OnboardingDone() bool
	SetOnboardingDone() error

	// VisitorID returns the persistent visitor identifier, generating
	// and persisting one on first call.
	VisitorID() (string, error)

	Close() error
}
