// Platebook is a terminal client for the recipe API.
//
// Usage:
//
//	platebook [-verbose] [-quiet] [-api URL]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/mnajar/platebook/internal/api"
	"github.com/mnajar/platebook/internal/config"
	"github.com/mnajar/platebook/internal/logger"
	"github.com/mnajar/platebook/internal/session"
	"github.com/mnajar/platebook/internal/ui"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".platebook-logs/platebook.log", "file to write logs to (use \"stderr\" to log to console)")
	apiURL := flag.String("api", "", "recipe API origin (overrides "+config.EnvBaseURL+")")
	tokenFile := flag.String("token-file", "", "path of the persisted login token (overrides "+config.EnvTokenPath+")")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	log := logger.New(logLevel, logOut)

	cfg := config.FromEnv()
	if *apiURL != "" {
		cfg.BaseURL = *apiURL
	}
	if *tokenFile != "" {
		cfg.TokenPath = *tokenFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Wire dependencies.
	store := session.NewStore(session.NewFileVault(cfg.TokenPath), log)
	// Hydrate before the UI runs so authenticated-only affordances
	// never flash the wrong state.
	if err := store.Hydrate(); err != nil {
		log.Warn("restoring session failed, starting logged out: %v", err)
	}

	client := api.NewClient(cfg.BaseURL, store, log, api.WithHTTPTimeout(cfg.Timeout))

	log.Info("platebook starting (api=%s)", cfg.BaseURL)

	app := ui.NewApp(client, store, log)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Error("ui: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
