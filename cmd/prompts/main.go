package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pavan1214/prompts/internal/adapter"
	"github.com/Pavan1214/prompts/internal/api"
	"github.com/Pavan1214/prompts/internal/service"
	"github.com/Pavan1214/prompts/internal/store"
	"github.com/Pavan1214/prompts/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Logging must never block startup
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	st, err := store.NewVisitorStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer st.Close()

	visitorID, err := st.VisitorID()
	if err != nil {
		logger.Warn("could not obtain visitor id", "error", err)
	}

	client := api.NewClient(cfg.API.FeedURL, logger)
	tracker := api.NewTracker(cfg.API.TrackingURL, logger)

	interactions := service.NewInteractionService(st, logger)
	feed := service.NewFeedService(interactions, logger)
	suggest := service.NewSuggestService(logger)

	opts := tui.Options{
		ShareURL:   cfg.API.ShareURL,
		Categories: cfg.Feed.Categories,
		VisitorID:  visitorID,
		DeepLinkID: deepLinkID(os.Args[1:]),
	}

	model := tui.NewModel(feed, interactions, suggest, client, tracker, st, logger, opts)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

// deepLinkID extracts an item id from the first argument. Both a full
// share link with an id query parameter and a bare id are accepted.
func deepLinkID(args []string) string {
	if len(args) == 0 {
		return ""
	}
	arg := strings.TrimSpace(args[0])
	if arg == "" {
		return ""
	}
	if strings.Contains(arg, "://") {
		u, err := url.Parse(arg)
		if err != nil {
			return ""
		}
		return u.Query().Get("id")
	}
	return arg
}
