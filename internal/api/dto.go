package api

import "github.com/Pavan1214/prompts/internal/domain"

// imageRecord mirrors the remote API's JSON shape. Fields beyond the
// ones mapped here are ignored.
type imageRecord struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AfterImage  struct {
		URL string `json:"url"`
	} `json:"afterImage"`
	Likes int `json:"likes"`
}

// mapItems converts API records to domain items. Records without a
// result image are skipped.
func mapItems(records []imageRecord) []domain.FeedItem {
	items := make([]domain.FeedItem, 0, len(records))
	for _, r := range records {
		if r.AfterImage.URL == "" {
			continue
		}
		items = append(items, domain.FeedItem{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			ImageURL:    r.AfterImage.URL,
			LikeCount:   r.Likes,
		})
	}
	return items
}
