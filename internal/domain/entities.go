package domain

// FeedItem represents one displayable prompt card fetched from the
// remote feed. Fields are immutable for the session except LikeCount,
// which is adjusted optimistically when the visitor toggles a like.
type FeedItem struct {
	ID          string // Remote unique identifier
	Title       string // Display title
	Description string // Prompt text shown on the card, used for copy
	ImageURL    string // Result image URL
	LikeCount   int    // Remote like counter
}

// Interaction captures the visitor's relationship to a single item.
type Interaction struct {
	Liked bool
	Saved bool
}
