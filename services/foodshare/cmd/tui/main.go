// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jredh-dev/foodshare/services/foodshare/cmd/tui/internal/app"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "foodshare-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		apiURL      string
		sessionFile string
		timeout     time.Duration
		logOutput   string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("foodshare-tui", pflag.ContinueOnError)
	flagSet.StringVar(&apiURL, "api", envOr("FOOD_API_BASE_URL", "http://localhost:8080"), "base URL of the food API")
	flagSet.StringVar(&sessionFile, "session-file", "", "where the signed-in user is kept (default: user config dir)")
	flagSet.DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout for API calls")
	flagSet.StringVar(&logOutput, "log-output", "", "append debug logs to this file")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Printf("foodshare-tui %s\n", version)
		return nil
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	if logOutput != "" {
		f, err := tea.LogToFile(logOutput, "foodshare-tui")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if sessionFile == "" {
		path, err := session.DefaultPath()
		if err != nil {
			return err
		}
		sessionFile = path
	}
	store := session.NewFileStore(sessionFile)

	viewer, err := store.Load()
	if err != nil {
		// A corrupt session file means logged out; the next login replaces it.
		log.Printf("load session from %s: %v", store.Path(), err)
	}

	api := foodapi.New(apiURL, foodapi.WithTimeout(timeout))
	m := app.New(api, store, viewer, timeout)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
