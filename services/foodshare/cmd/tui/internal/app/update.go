// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/forms"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// Init satisfies tea.Model. It starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.fetchFoods()
}

// Update is the bubbletea update function.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case foodsMsg:
		return m.handleFoods(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case transitionMsg:
		return m.handleTransition(msg)
	}

	return m, nil
}

// --- Key Handling ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case stateLogin:
		return m.handleLoginKey(msg)
	default:
		return m.handleBoardKey(msg)
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		email, err := forms.Login{Email: m.email}.Validate()
		if err != nil {
			title, desc := forms.Message(err)
			m.setNotice(listing.Notice{Title: title, Description: desc, Variant: listing.VariantDestructive})
			return m, nil
		}
		m.loading = true
		return m, m.doLogin(email)
	case tea.KeyBackspace:
		if r := []rune(m.email); len(r) > 0 {
			m.email = string(r[:len(r)-1])
		}
	case tea.KeyEsc:
		m.state = stateBoard
		m.email = ""
	case tea.KeyRunes:
		m.email += string(msg.Runes)
	}
	return m, nil
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Accept):
		if card, ok := m.selected(); ok && card.CanAccept() {
			return m, m.doAccept(card.Listing)
		}

	case key.Matches(msg, m.keys.Confirm):
		if card, ok := m.selected(); ok && card.CanConfirm() {
			return m, m.doConfirm(card.Listing)
		}

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.fetchFoods()

	case key.Matches(msg, m.keys.Login):
		if !m.viewer.LoggedIn() {
			m.state = stateLogin
			m.hasNotice = false
		}

	case key.Matches(msg, m.keys.Logout):
		if m.viewer.LoggedIn() {
			return m.logout()
		}
	}
	return m, nil
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.store.Clear(); err != nil {
		log.Printf("foodshare-tui: clear session: %v", err)
	}
	m.viewer = session.Anonymous()
	m.rebuild()
	m.setNotice(listing.Notice{
		Title:       "Logged out successfully",
		Description: "See you again soon!",
		Variant:     listing.VariantDefault,
	})
	return m, nil
}

// --- Result handlers ---

func (m Model) handleFoods(msg foodsMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		log.Printf("foodshare-tui: fetch foods: %v", msg.err)
		m.setNotice(listing.Notice{
			Title:       "Error loading foods",
			Description: "Press g to try again.",
			Variant:     listing.VariantDestructive,
		})
		return m, nil
	}
	m.foods = msg.foods
	m.rebuild()
	return m, nil
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		var se *foodapi.StatusError
		desc := "Please check your connection and try again."
		if errors.As(msg.err, &se) {
			desc = "Check your email address and try again."
		}
		m.setNotice(listing.Notice{Title: "Login failed", Description: desc, Variant: listing.VariantDestructive})
		return m, nil
	}

	if err := m.store.Save(msg.user); err != nil {
		log.Printf("foodshare-tui: save session: %v", err)
	}
	m.viewer = session.SignedIn(msg.user)
	m.state = stateBoard
	m.email = ""
	m.loading = true
	m.setNotice(listing.Notice{
		Title:   fmt.Sprintf("Welcome back, %s!", msg.user.Name),
		Variant: listing.VariantDefault,
	})
	return m, m.fetchFoods()
}

// handleTransition shows the outcome and, on success, moves the listing
// locally before refetching.
func (m Model) handleTransition(msg transitionMsg) (tea.Model, tea.Cmd) {
	m.setNotice(msg.notice)

	if errors.Is(msg.err, listing.ErrLoginRequired) {
		m.state = stateLogin
		return m, nil
	}
	if msg.err != nil {
		log.Printf("foodshare-tui: %s: %v", msg.trigger, msg.err)
		return m, nil
	}

	next, event, err := listing.Apply(msg.listing, msg.trigger, m.viewer.Name())
	if err == nil {
		switch event {
		case listing.EventRemoved:
			m.foods = listing.Remove(m.foods, msg.listing.ID)
		case listing.EventReclassified:
			for i := range m.foods {
				if m.foods[i].ID == next.ID {
					m.foods[i] = next
				}
			}
		}
		m.rebuild()
	}

	m.loading = true
	return m, m.fetchFoods()
}

// --- Commands ---

func (m Model) fetchFoods() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		foods, err := api.AvailableFoods(ctx)
		return foodsMsg{foods: foods, err: err}
	}
}

func (m Model) doLogin(email string) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		u, err := api.Login(ctx, email)
		return loginResultMsg{user: u, err: err}
	}
}

func (m Model) doAccept(l models.Listing) tea.Cmd {
	svc, v, timeout := m.listings, m.viewer, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		n, err := svc.Accept(ctx, l, v)
		return transitionMsg{trigger: listing.TriggerAccept, listing: l, notice: n, err: err}
	}
}

func (m Model) doConfirm(l models.Listing) tea.Cmd {
	svc, timeout := m.listings, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		n, err := svc.ConfirmReceived(ctx, l.ID)
		return transitionMsg{trigger: listing.TriggerConfirmReceived, listing: l, notice: n, err: err}
	}
}
