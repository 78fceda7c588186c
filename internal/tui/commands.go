package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pavan1214/prompts/internal/api"
	"github.com/Pavan1214/prompts/internal/domain"
	"github.com/Pavan1214/prompts/internal/service"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Command factories for async operations

// FetchFeedCmd fetches the full item collection
func FetchFeedCmd(repo domain.FeedRepository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		items, err := repo.FetchAll(ctx)
		if err != nil {
			return FeedErrorMsg{Err: err}
		}
		return FeedLoadedMsg{Items: items}
	}
}

// SyncLikeCmd dispatches the remote counter mutation for a like
// toggle. The local optimistic state is already applied and persisted
// by the time this runs; the UI never waits on it.
func SyncLikeCmd(repo domain.FeedRepository, id string, liked bool, token int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var count int
		var err error
		if liked {
			count, err = repo.Like(ctx, id)
		} else {
			count, err = repo.Unlike(ctx, id)
		}
		return LikeSyncedMsg{ID: id, Token: token, Count: count, Err: err}
	}
}

// ReplayPendingCmd re-dispatches unconfirmed mutations from previous
// sessions against the remote counter.
func ReplayPendingCmd(repo domain.FeedRepository, replays []service.PendingMutation) tea.Cmd {
	cmds := make([]tea.Cmd, len(replays))
	for i, r := range replays {
		cmds[i] = SyncLikeCmd(repo, r.ID, r.Liked, r.Token)
	}
	return tea.Batch(cmds...)
}

// TrackViewCmd fires the anonymous view beacon
func TrackViewCmd(tracker *api.Tracker, visitorID, pageURL string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return TrackDoneMsg{Err: tracker.TrackView(ctx, visitorID, pageURL)}
	}
}

// CopyTextCmd writes text to the system clipboard and reports via toast
func CopyTextCmd(text, okToast, failToast string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWriteAll(text); err != nil {
			return ToastMsg{Text: failToast}
		}
		return ToastMsg{Text: okToast}
	}
}

// ClearToastCmd hides the toast after a delay
func ClearToastCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearToastMsg{}
	})
}

// TickCmd drives the onboarding hint animation
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// DeepLinkCmd resolves the requested item after a short settle delay
// so the first render has happened before the scroll is applied.
func DeepLinkCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return DeepLinkMsg{ID: id}
	})
}
