package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/afyalink/afyaterm/internal/api"
	"github.com/afyalink/afyaterm/internal/config"
	"github.com/afyalink/afyaterm/internal/session"
	"github.com/afyalink/afyaterm/internal/ui"
)

func main() {
	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "could not create data dir: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	store := session.NewStore(cfg.DataDir)
	if err := store.Load(); err != nil {
		logger.Warn("could not load saved session", "err", err)
	}

	client := api.New(cfg.BaseURL, store, logger)
	logger.Info("starting", "base_url", cfg.BaseURL)

	p := tea.NewProgram(ui.New(cfg, store, client, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
