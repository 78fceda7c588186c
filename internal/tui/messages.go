package tui

import "github.com/Pavan1214/prompts/internal/domain"

// Message types for the TUI

// FeedLoadedMsg signals that the remote collection has been fetched
type FeedLoadedMsg struct {
	Items []domain.FeedItem
}

// FeedErrorMsg signals that the feed fetch failed. This is terminal
// for the session; there is no retry.
type FeedErrorMsg struct {
	Err error
}

// LikeSyncedMsg carries the result of a remote like/unlike mutation.
// Token identifies which local toggle dispatched the call so stale
// completions can be discarded.
type LikeSyncedMsg struct {
	ID    string
	Token int
	Count int
	Err   error
}

// TrackDoneMsg carries the result of the fire-and-forget view beacon
type TrackDoneMsg struct {
	Err error
}

// ToastMsg shows a transient notification
type ToastMsg struct {
	Text string
}

// ClearToastMsg hides the toast
type ClearToastMsg struct{}

// TickMsg drives the onboarding hint animation
type TickMsg struct{}

// DeepLinkMsg fires after the post-render settle delay to scroll the
// requested item into view
type DeepLinkMsg struct {
	ID string
}
