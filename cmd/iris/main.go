package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/irisfoto/iris/internal/adapter"
	"github.com/irisfoto/iris/internal/pexels"
	"github.com/irisfoto/iris/internal/service"
	"github.com/irisfoto/iris/internal/store"
	"github.com/irisfoto/iris/internal/tui"
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
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.IsConfigured() {
		key, err := promptAPIKey()
		if err != nil {
			return err
		}
		if err := adapter.SaveAPIKey(key); err != nil {
			return fmt.Errorf("saving API key: %w", err)
		}
		cfg.API.Key = key
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Logging is best-effort; the app still runs without a log file.
		logger = adapter.NullLogger()
	}
	logger.Info("starting iris", "cache_dir", cfg.Cache.Dir)

	db, err := store.Open(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("opening cache store: %w", err)
	}
	defer db.Close()

	client := pexels.NewClient(cfg.API.BaseURL, cfg.API.Key, logger)
	gallery := service.NewGalleryService(client, db, db, logger)
	bookmarks := service.NewBookmarkService(db, logger)

	// Drop entries past their TTL before the first read.
	gallery.CleanExpired()

	p := tea.NewProgram(
		tui.NewModel(gallery, bookmarks, logger, cfg.UI.GridColumns),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// promptAPIKey runs the first-launch setup: read a Pexels API key without
// echoing it to the terminal.
func promptAPIKey() (string, error) {
	fmt.Println("Iris needs a Pexels API key (https://www.pexels.com/api/).")
	fmt.Print("API key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", fmt.Errorf("no API key provided")
	}
	return key, nil
}
