package service

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/Pavan1214/prompts/internal/domain"
)

// titleIndex implements fuzzy.Source for zero-allocation matching
type titleIndex struct {
	items       []domain.FeedItem
	lowerTitles []string // Pre-computed lowercase titles
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *titleIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *titleIndex) Len() int { return len(idx.items) }

// SuggestService ranks item titles against the search input as it is
// typed. Suggestions only guide the visitor toward a term; the actual
// filter applied by the feed service stays plain substring matching.
type SuggestService struct {
	logger *slog.Logger

	mu    sync.RWMutex
	index *titleIndex
}

// NewSuggestService creates an empty suggestion service.
func NewSuggestService(logger *slog.Logger) *SuggestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestService{
		logger: logger,
		index:  &titleIndex{},
	}
}

// Index rebuilds the suggestion index from the master sequence.
func (s *SuggestService) Index(items []domain.FeedItem) {
	idx := &titleIndex{
		items:       items,
		lowerTitles: make([]string, len(items)),
	}
	for i, item := range items {
		idx.lowerTitles[i] = strings.ToLower(item.Title)
	}

	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()
	s.logger.Debug("indexed titles for suggestions", "count", len(items))
}

// Suggest returns up to limit distinct titles ranked against query.
// Exact-subsequence matches rank first; when none match, a ranked
// near-match pass with typo tolerance runs as a fallback.
func (s *SuggestService) Suggest(query string, limit int) []string {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || limit <= 0 {
		return nil
	}

	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()

	if idx.Len() == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(query, idx)
	if len(matches) == 0 {
		return s.nearMatches(query, idx, limit)
	}

	seen := make(map[string]bool)
	titles := make([]string, 0, limit)
	for _, match := range matches {
		title := idx.items[match.Index].Title
		if seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
		if len(titles) == limit {
			break
		}
	}
	return titles
}

// nearMatches ranks titles by edit distance for queries with typos.
// Allowed distance scales with query length: none under 4 runes, one
// up to 6, two beyond.
func (s *SuggestService) nearMatches(query string, idx *titleIndex, limit int) []string {
	maxDist := allowedTypos(len([]rune(query)))
	if maxDist == 0 {
		return nil
	}

	type ranked struct {
		title string
		dist  int
	}
	var candidates []ranked
	for i, lower := range idx.lowerTitles {
		// Compare against the closest title word, not the whole title
		best := -1
		for _, word := range strings.Fields(lower) {
			d := lfuzzy.LevenshteinDistance(query, word)
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 && best <= maxDist {
			candidates = append(candidates, ranked{title: idx.items[i].Title, dist: best})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	seen := make(map[string]bool)
	titles := make([]string, 0, limit)
	for _, c := range candidates {
		if seen[c.title] {
			continue
		}
		seen[c.title] = true
		titles = append(titles, c.title)
		if len(titles) == limit {
			break
		}
	}
	return titles
}

func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}
