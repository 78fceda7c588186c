package domain

// ViewMode is the single active browse mode. Exactly one mode is
// active at any time; activating a mode clears the others.
type ViewMode int

const (
	ViewAll ViewMode = iota
	ViewSearch
	ViewCategory
	ViewSaved
)

func (m ViewMode) String() string {
	switch m {
	case ViewAll:
		return "all"
	case ViewSearch:
		return "search"
	case ViewCategory:
		return "category"
	case ViewSaved:
		return "saved"
	default:
		return "unknown"
	}
}
