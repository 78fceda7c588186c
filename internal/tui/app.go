package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pavan1214/prompts/internal/api"
	"github.com/Pavan1214/prompts/internal/domain"
	"github.com/Pavan1214/prompts/internal/service"
	"github.com/Pavan1214/prompts/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota
	StateBrowsing
	StateLoadFailed
)

const (
	onboardTickInterval = 150 * time.Millisecond
	deepLinkSettleDelay = 500 * time.Millisecond
	toastDuration       = 3 * time.Second
)

// Options carries startup parameters into the model
type Options struct {
	ShareURL   string   // Public page used to build share links
	Categories []string // Filter menu entries
	VisitorID  string   // Persistent visitor identity for the beacon
	DeepLinkID string   // Item id from a share link, resolved once
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	feed         *service.FeedService
	interactions *service.InteractionService
	suggest      *service.SuggestService
	repo         domain.FeedRepository
	tracker      *api.Tracker
	store        domain.StateStore
	logger       *slog.Logger

	// Startup options
	shareURL   string
	categories []string
	visitorID  string
	deepLinkID string

	// Application state
	state ApplicationState
	ready bool

	// Derived view
	displayed []domain.FeedItem
	cursor    int

	// UI components
	viewport    viewport.Model
	searchInput textinput.Model
	keys        KeyMap

	// Filter menu
	menuOpen   bool
	menuCursor int

	// Suggestions shown while the search input is focused
	suggestions []string

	// Onboarding hint
	onboardArmed bool
	onboardFrame int

	spinnerFrame int

	toast string

	width  int
	height int
}

// NewModel creates a new application model
func NewModel(
	feed *service.FeedService,
	interactions *service.InteractionService,
	suggest *service.SuggestService,
	repo domain.FeedRepository,
	tracker *api.Tracker,
	store domain.StateStore,
	logger *slog.Logger,
	opts Options,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Search prompts..."
	ti.CharLimit = 100
	ti.Width = 30
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Model{
		feed:         feed,
		interactions: interactions,
		suggest:      suggest,
		repo:         repo,
		tracker:      tracker,
		store:        store,
		logger:       logger,
		shareURL:     opts.ShareURL,
		categories:   opts.Categories,
		visitorID:    opts.VisitorID,
		deepLinkID:   opts.DeepLinkID,
		state:        StateLoading,
		searchInput:  ti,
		keys:         DefaultKeyMap(),
	}
}

// Init fetches the feed and fires the view beacon
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{FetchFeedCmd(m.repo), TickCmd(onboardTickInterval)}
	if m.tracker != nil {
		cmds = append(cmds, TrackViewCmd(m.tracker, m.visitorID, m.shareURL))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		}
		m.updateLayout()
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case FeedLoadedMsg:
		return m.handleFeedLoaded(msg)

	case FeedErrorMsg:
		// Terminal: no retry, the session stays on the failure screen
		m.logger.Error("feed load failed", "error", msg.Err)
		m.state = StateLoadFailed
		return m, nil

	case LikeSyncedMsg:
		if msg.Err != nil {
			m.interactions.FailLike(msg.ID, msg.Token, msg.Err)
			return m, nil
		}
		if m.interactions.ConfirmLike(msg.ID, msg.Token, msg.Count) {
			m.feed.ApplyLikeCount(msg.ID, msg.Count)
			m.displayed = m.feed.Displayed()
			m.refreshContent()
		}
		return m, nil

	case TrackDoneMsg:
		if msg.Err != nil {
			m.logger.Warn("view tracking failed", "error", msg.Err)
		}
		return m, nil

	case DeepLinkMsg:
		m.resolveDeepLink(msg.ID)
		return m, nil

	case ToastMsg:
		m.toast = msg.Text
		return m, ClearToastCmd(toastDuration)

	case ClearToastMsg:
		m.toast = ""
		return m, nil

	case TickMsg:
		// One tick loop serves both the loading spinner and the
		// onboarding bounce; it stops once neither needs frames.
		switch {
		case m.state == StateLoading:
			m.spinnerFrame++
			return m, TickCmd(onboardTickInterval)
		case m.onboardArmed:
			m.onboardFrame++
			m.refreshContent()
			return m, TickCmd(onboardTickInterval)
		}
		return m, nil
	}

	return m, nil
}

// handleFeedLoaded installs the collection, kicks off reconciliation
// of unconfirmed likes, arms the onboarding hint, and schedules the
// deep-link scroll.
func (m Model) handleFeedLoaded(msg FeedLoadedMsg) (tea.Model, tea.Cmd) {
	m.feed.SetMaster(msg.Items)
	m.suggest.Index(m.feed.Master())
	m.displayed = m.feed.Displayed()
	m.cursor = 0
	m.state = StateBrowsing

	var cmds []tea.Cmd

	// Replay like/unlike mutations that never got a remote confirmation
	var replays []service.PendingMutation
	for _, r := range m.interactions.Replay() {
		if _, ok := m.feed.Item(r.ID); !ok {
			m.interactions.Forget(r.ID)
			continue
		}
		replays = append(replays, r)
	}
	if len(replays) > 0 {
		m.logger.Info("replaying unconfirmed like mutations", "count", len(replays))
		cmds = append(cmds, ReplayPendingCmd(m.repo, replays))
	}

	// The tick loop started in Init keeps running while armed
	m.onboardArmed = !m.store.OnboardingDone()

	if m.deepLinkID != "" {
		cmds = append(cmds, DeepLinkCmd(m.deepLinkID, deepLinkSettleDelay))
	}

	m.updateLayout()
	m.refreshContent()
	return m, tea.Batch(cmds...)
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && !m.searchInput.Focused() {
		return m, tea.Quit
	}

	if m.state != StateBrowsing {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// Any keypress is a gesture that cancels the onboarding hint
	m.cancelOnboarding()

	// Search input captures keys while focused
	if m.searchInput.Focused() {
		return m.handleSearchKey(msg)
	}

	// Filter menu captures navigation while open
	if m.menuOpen {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.refreshContent()
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.displayed)-1 {
			m.cursor++
		}
		m.refreshContent()
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.refreshContent()
		m.viewport.GotoTop()

	case key.Matches(msg, m.keys.Bottom):
		if len(m.displayed) > 0 {
			m.cursor = len(m.displayed) - 1
		}
		m.refreshContent()
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Like):
		return m.toggleLike()

	case key.Matches(msg, m.keys.Save):
		m.toggleSave()

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.selectedItem(); ok {
			return m, CopyTextCmd(item.Description, "Prompt Copied!", "Failed to copy prompt.")
		}

	case key.Matches(msg, m.keys.Share):
		if item, ok := m.selectedItem(); ok {
			link := m.shareURL + "/?id=" + item.ID
			return m, CopyTextCmd(link, "Link Copied!", "Failed to copy link.")
		}

	case key.Matches(msg, m.keys.Search):
		m.menuOpen = false
		m.searchInput.Focus()
		m.updateLayout()

	case key.Matches(msg, m.keys.Filter):
		m.searchInput.Blur()
		m.menuOpen = !m.menuOpen
		m.menuCursor = 0
		m.updateLayout()

	case key.Matches(msg, m.keys.Saved):
		m.applyTransition(m.feed.ShowSaved())

	case key.Matches(msg, m.keys.Escape):
		if m.feed.Mode() != domain.ViewAll {
			m.searchInput.Reset()
			m.applyTransition(m.feed.ClearFilter())
		}
	}

	return m, nil
}

// handleSearchKey routes keys to the search input. Filtering is live:
// every edit re-derives the displayed sequence. An emptied input is
// equivalent to clearing the filter.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.suggestions = nil
		m.applyTransition(m.feed.ClearFilter())
		return m, nil

	case "enter":
		m.searchInput.Blur()
		m.suggestions = nil
		m.updateLayout()
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if term := m.searchInput.Value(); term != before {
		m.suggestions = m.suggest.Suggest(term, 5)
		m.applyTransition(m.feed.SetSearch(term))
	}
	return m, cmd
}

// handleMenuKey handles the filter dropdown. Entries are the
// configured categories plus Saved and Clear filter.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.menuEntries()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(entries)-1 {
			m.menuCursor++
		}

	case key.Matches(msg, m.keys.Enter):
		selected := entries[m.menuCursor]
		m.menuOpen = false
		m.searchInput.Reset()
		switch selected {
		case "Saved":
			m.applyTransition(m.feed.ShowSaved())
		case "Clear filter":
			m.applyTransition(m.feed.ClearFilter())
		default:
			m.applyTransition(m.feed.SetCategory(selected))
		}

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Filter):
		m.menuOpen = false
		m.updateLayout()
	}

	return m, nil
}

// handleMouseMsg treats wheel scroll as both viewport movement and an
// onboarding-cancelling gesture.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != StateBrowsing {
		return m, nil
	}
	m.cancelOnboarding()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(3)
	case tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(3)
	}
	return m, nil
}

// toggleLike applies the optimistic local mutation, persists it, and
// only then dispatches the remote counter call. The UI never waits on
// the network for its own consistency.
func (m Model) toggleLike() (tea.Model, tea.Cmd) {
	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}

	result := m.interactions.ToggleLike(item.ID, item.LikeCount)
	m.feed.ApplyLikeCount(item.ID, result.Count)
	m.displayed = m.feed.Displayed()
	m.refreshContent()

	return m, SyncLikeCmd(m.repo, item.ID, result.Liked, result.Token)
}

// toggleSave flips the purely-local save state. Unsaving while the
// saved view is active removes the item from view immediately.
func (m *Model) toggleSave() {
	item, ok := m.selectedItem()
	if !ok {
		return
	}

	m.interactions.ToggleSave(item.ID)
	if m.feed.Mode() == domain.ViewSaved {
		m.displayed = m.feed.Displayed()
		if m.cursor >= len(m.displayed) {
			m.cursor = len(m.displayed) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	m.refreshContent()
}

// applyTransition installs a newly derived displayed sequence and
// resets scroll to the top of the feed.
func (m *Model) applyTransition(items []domain.FeedItem) {
	m.displayed = items
	m.cursor = 0
	m.updateLayout()
	m.refreshContent()
	if m.ready {
		m.viewport.GotoTop()
	}
}

// resolveDeepLink scrolls the requested item into view if it is
// present in the displayed sequence, then consumes the link.
func (m *Model) resolveDeepLink(id string) {
	m.deepLinkID = ""
	for i, item := range m.displayed {
		if item.ID == id {
			m.cursor = i
			m.refreshContent()
			m.ensureCursorVisible()
			return
		}
	}
	// Absent id: no-op, the link is still consumed
}

// cancelOnboarding removes the swipe hint and persists the flag so it
// never re-arms. Repeated gestures after that are no-ops.
func (m *Model) cancelOnboarding() {
	if !m.onboardArmed {
		return
	}
	m.onboardArmed = false
	if err := m.store.SetOnboardingDone(); err != nil {
		m.logger.Error("failed to persist onboarding flag", "error", err)
	}
	m.refreshContent()
}

func (m Model) selectedItem() (domain.FeedItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.displayed) {
		return domain.FeedItem{}, false
	}
	return m.displayed[m.cursor], true
}

func (m Model) menuEntries() []string {
	entries := make([]string, 0, len(m.categories)+2)
	entries = append(entries, m.categories...)
	entries = append(entries, "Saved", "Clear filter")
	return entries
}

// hintFrame returns the animation frame while the hint is armed
func (m Model) hintFrame() int {
	if !m.onboardArmed {
		return noHint
	}
	return m.onboardFrame
}

// refreshContent re-renders the card list into the viewport
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderFeed(m.displayed, m.interactions, m.width, m.cursor, m.hintFrame()))
}

// ensureCursorVisible scrolls the viewport so the selected card is on
// screen.
func (m *Model) ensureCursorVisible() {
	if !m.ready {
		return
	}
	top := cardOffset(m.cursor, m.onboardArmed)
	bottom := top + cardContentLines + 2
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// updateLayout recomputes the viewport height from the chrome rows
func (m *Model) updateLayout() {
	if !m.ready {
		return
	}
	chrome := 2 // header + footer
	if m.searchInput.Focused() {
		chrome++ // suggestion row
	}
	if m.menuOpen {
		chrome += len(m.menuEntries())
	}
	m.viewport.Width = m.width
	m.viewport.Height = m.height - chrome
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.searchInput.Width = m.width / 3
}

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.state {
	case StateLoading:
		frame := styles.SpinnerFrames[m.spinnerFrame%len(styles.SpinnerFrames)]
		return m.renderHeader() + "\n" + styles.DimStyle.Render("  "+frame+" Loading images...")
	case StateLoadFailed:
		return m.renderHeader() + "\n" + renderLoadFailure(m.width)
	}

	sections := []string{m.renderHeader()}

	if m.searchInput.Focused() {
		sections = append(sections, m.renderSuggestions())
	}
	if m.menuOpen {
		sections = append(sections, m.renderMenu())
	}

	sections = append(sections, m.viewport.View(), m.renderFooter())
	return strings.Join(sections, "\n")
}

// renderHeader shows the app title, the search input, and the filter
// control labelled for the active mode.
func (m Model) renderHeader() string {
	label := "[" + m.feed.FilterLabel() + " ▾]"
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.TitleStyle.Render(" PromP.ts "),
		" ",
		m.searchInput.View(),
		"  ",
		styles.AccentStyle.Render(label),
	)
}

func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return styles.DimStyle.Render("   type to search titles and prompts")
	}
	return styles.DimStyle.Render("   " + strings.Join(m.suggestions, " · "))
}

func (m Model) renderMenu() string {
	entries := m.menuEntries()
	lines := make([]string, len(entries))
	for i, entry := range entries {
		marker := "  "
		style := styles.SubtitleStyle
		if i == m.menuCursor {
			marker = "> "
			style = styles.AccentStyle
		}
		lines[i] = " " + marker + style.Render(entry)
	}
	return strings.Join(lines, "\n")
}

// renderFooter shows the toast when active, key hints otherwise
func (m Model) renderFooter() string {
	if m.toast != "" {
		return " " + styles.ToastStyle.Render(m.toast)
	}
	hints := "j/k browse · l like · b save · c copy · s share · / search · f filter · q quit"
	return " " + styles.DimStyle.Render(hints)
}
