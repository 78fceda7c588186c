package tui

import (
	"fmt"
	"strings"

	"github.com/Pavan1214/prompts/internal/domain"
	"github.com/Pavan1214/prompts/internal/tui/styles"
)

// Card geometry: three content lines inside a border. The onboarding
// hint adds one line to the first card while armed.
const cardContentLines = 3

// interactionView is the slice of the interaction store the render
// pipeline reads. Icon state comes from here and nowhere else.
type interactionView interface {
	Interaction(id string) domain.Interaction
}

// noHint disables the onboarding hint line
const noHint = -1

// bounceOffsets is the indent sequence for the swipe-hint animation
var bounceOffsets = []int{0, 1, 2, 3, 2, 1}

// renderFeed projects the displayed sequence and interaction state
// into the card list. It is a pure function of its inputs: rendering
// the same state twice yields identical output.
func renderFeed(items []domain.FeedItem, state interactionView, width, selected, hintFrame int) string {
	if len(items) == 0 {
		return renderPlaceholder(width)
	}

	cards := make([]string, len(items))
	for i, item := range items {
		frame := noHint
		if i == 0 && hintFrame >= 0 {
			frame = hintFrame
		}
		it := state.Interaction(item.ID)
		cards[i] = renderCard(item, it.Liked, it.Saved, i == selected, width, frame)
	}
	return strings.Join(cards, "\n")
}

// renderCard renders a single prompt card. Liked/saved icons derive
// strictly from the passed state, never from prior render output.
func renderCard(item domain.FeedItem, liked, saved, selected bool, width, hintFrame int) string {
	inner := width - 2 // border columns
	if inner < 10 {
		inner = 10
	}

	heart := styles.DimStyle.Render("♡")
	if liked {
		heart = styles.LikedStyle.Render("♥")
	}
	flag := styles.DimStyle.Render("⚐")
	if saved {
		flag = styles.SavedStyle.Render("⚑")
	}
	icons := fmt.Sprintf("%s %d  %s", heart, item.LikeCount, flag)
	iconWidth := len(fmt.Sprintf("x %d  x", item.LikeCount))

	title := truncate(item.Title, inner-iconWidth-3)
	pad := inner - len([]rune(title)) - iconWidth - 2
	if pad < 1 {
		pad = 1
	}

	lines := []string{
		styles.TitleStyle.Render(title) + strings.Repeat(" ", pad) + icons,
		styles.DimStyle.Render(truncate(item.ImageURL, inner-2)),
		styles.SubtitleStyle.Render(truncate(item.Description, inner-2)),
	}

	if hintFrame >= 0 {
		indent := bounceOffsets[hintFrame%len(bounceOffsets)]
		lines = append(lines, strings.Repeat(" ", indent)+styles.AccentStyle.Render("⟨ swipe to browse ⟩"))
	}

	border := styles.InactiveBorder
	if selected {
		border = styles.ActiveBorder
	}
	return border.Width(inner).Render(strings.Join(lines, "\n"))
}

// renderPlaceholder renders the empty-result message. An empty
// sequence always shows this, never a bare container.
func renderPlaceholder(width int) string {
	return "\n" + styles.DimStyle.Render("  No images found.")
}

// renderLoadFailure renders the terminal feed-unavailable state
func renderLoadFailure(width int) string {
	return "\n" + styles.ErrorStyle.Render("  Could not load images.")
}

// cardOffset returns the first viewport line of card index, accounting
// for the extra hint line on the first card while armed.
func cardOffset(index int, hintActive bool) int {
	height := cardContentLines + 2 // border top/bottom
	offset := index * (height + 1) // cards joined by one newline
	if hintActive && index > 0 {
		offset++
	}
	return offset
}

// truncate shortens s to max runes, appending an ellipsis when cut
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
