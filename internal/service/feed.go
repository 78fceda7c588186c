package service

import (
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/Pavan1214/prompts/internal/domain"
)

// FeedService owns the master item sequence and the single active view
// mode. The master sequence is shuffled once when set and then held
// fixed for the session; every displayed sequence is derived from it.
type FeedService struct {
	interactions *InteractionService
	logger       *slog.Logger

	master []domain.FeedItem
	mode   domain.ViewMode
	term   string // Active search or category term
}

// NewFeedService creates a feed service in the all-items view.
func NewFeedService(interactions *InteractionService, logger *slog.Logger) *FeedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{
		interactions: interactions,
		logger:       logger,
		mode:         domain.ViewAll,
	}
}

// SetMaster installs the fetched collection as the master sequence,
// permuting it once. The order stays fixed afterwards so browsing is
// varied between sessions but stable within one.
func (s *FeedService) SetMaster(items []domain.FeedItem) {
	s.master = make([]domain.FeedItem, len(items))
	copy(s.master, items)
	rand.Shuffle(len(s.master), func(i, j int) {
		s.master[i], s.master[j] = s.master[j], s.master[i]
	})
	s.mode = domain.ViewAll
	s.term = ""
	s.logger.Info("feed loaded", "items", len(s.master))
}

// Master returns the session's master sequence.
func (s *FeedService) Master() []domain.FeedItem {
	return s.master
}

// Mode returns the active view mode.
func (s *FeedService) Mode() domain.ViewMode {
	return s.mode
}

// Term returns the active search or category term.
func (s *FeedService) Term() string {
	return s.term
}

// FilterLabel is the label the filter control shows for the active mode.
func (s *FeedService) FilterLabel() string {
	switch s.mode {
	case domain.ViewCategory:
		return s.term
	case domain.ViewSaved:
		return "Saved"
	default:
		return "Filter"
	}
}

// SetSearch activates the search view. An empty term is equivalent to
// ClearFilter. Matching is case-insensitive substring against title
// and description.
func (s *FeedService) SetSearch(term string) []domain.FeedItem {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ClearFilter()
	}
	s.mode = domain.ViewSearch
	s.term = term
	return s.Displayed()
}

// SetCategory activates the category view. Matching is
// case-insensitive substring against title only.
func (s *FeedService) SetCategory(term string) []domain.FeedItem {
	s.mode = domain.ViewCategory
	s.term = term
	return s.Displayed()
}

// ShowSaved activates the saved view, filtering the master sequence by
// saved-set membership independent of any text term.
func (s *FeedService) ShowSaved() []domain.FeedItem {
	s.mode = domain.ViewSaved
	s.term = ""
	return s.Displayed()
}

// ClearFilter restores the all-items view with the master sequence
// unchanged in order.
func (s *FeedService) ClearFilter() []domain.FeedItem {
	s.mode = domain.ViewAll
	s.term = ""
	return s.Displayed()
}

// Displayed derives the sequence to display from the master sequence,
// the active mode, and the interaction sets. It is recomputed on every
// call, never cached beyond the current mode.
func (s *FeedService) Displayed() []domain.FeedItem {
	switch s.mode {
	case domain.ViewSearch:
		term := strings.ToLower(s.term)
		var items []domain.FeedItem
		for _, item := range s.master {
			if strings.Contains(strings.ToLower(item.Title), term) ||
				strings.Contains(strings.ToLower(item.Description), term) {
				items = append(items, item)
			}
		}
		return items

	case domain.ViewCategory:
		term := strings.ToLower(s.term)
		var items []domain.FeedItem
		for _, item := range s.master {
			if strings.Contains(strings.ToLower(item.Title), term) {
				items = append(items, item)
			}
		}
		return items

	case domain.ViewSaved:
		var items []domain.FeedItem
		for _, item := range s.master {
			if s.interactions.IsSaved(item.ID) {
				items = append(items, item)
			}
		}
		return items

	default:
		items := make([]domain.FeedItem, len(s.master))
		copy(items, s.master)
		return items
	}
}

// ApplyLikeCount updates an item's like counter in the master
// sequence. Used for both the optimistic local adjustment and a
// confirmed server count.
func (s *FeedService) ApplyLikeCount(id string, count int) {
	for i := range s.master {
		if s.master[i].ID == id {
			s.master[i].LikeCount = count
			return
		}
	}
}

// Item returns the master item with the given id.
func (s *FeedService) Item(id string) (domain.FeedItem, bool) {
	for _, item := range s.master {
		if item.ID == id {
			return item, true
		}
	}
	return domain.FeedItem{}, false
}
