// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4CAF50"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#4CAF50"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF88"))

	waitingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

// View renders the full-screen TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	switch m.state {
	case stateLogin:
		return m.viewLogin()
	default:
		return m.viewBoard()
	}
}

// --- Full-screen views ---

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  FOODSHARE"))
	b.WriteString("\n\n")
	b.WriteString(m.renderNotice())
	b.WriteString("  Email: ")
	b.WriteString(m.email)
	b.WriteString("█")
	b.WriteString("\n\n")
	if m.loading {
		b.WriteString(dimStyle.Render("  Logging in..."))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("  [enter] login  [esc] back"))
	return b.String()
}

func (m Model) viewBoard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  FOODSHARE"))
	b.WriteString("  ")
	if u, ok := m.viewer.Session(); ok {
		b.WriteString(fmt.Sprintf("Welcome, %s (%s)", u.Name, u.Role))
	} else {
		b.WriteString(dimStyle.Render("Not logged in"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderNotice())

	row := 0
	if len(m.mine) > 0 {
		b.WriteString(headerStyle.Render(fmt.Sprintf("  My Accepted Foods (%d waiting for pickup)", len(m.mine))))
		b.WriteString("\n")
		for _, c := range m.mine {
			b.WriteString(m.renderCard(c, row == m.cursor))
			row++
		}
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("  Available Food Donations (%d available)", len(m.available))))
	b.WriteString("\n")
	switch {
	case m.loading && len(m.available) == 0:
		b.WriteString(dimStyle.Render("  Loading available foods..."))
		b.WriteString("\n")
	case len(m.available) == 0:
		b.WriteString(dimStyle.Render("  No food donations available. Check back later!"))
		b.WriteString("\n")
	}
	for _, c := range m.available {
		b.WriteString(m.renderCard(c, row == m.cursor))
		row++
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + m.helpLine()))
	return b.String()
}

func (m Model) renderCard(c listing.Card, selected bool) string {
	line := fmt.Sprintf("%s · %s · feeds %d · %s", c.Item, c.Availability, c.ExpectedPeople, c.Location)
	if selected {
		line = selectedStyle.Render("> " + line)
	} else {
		line = "  " + line
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(line)
	b.WriteString("\n")
	if c.Contact != "" || c.Email != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("      contact: %s %s", c.Contact, c.Email)))
		b.WriteString("\n")
	}
	if c.AwaitingPickup {
		b.WriteString(waitingStyle.Render("      Waiting for pickup by " + c.AcceptedBy))
		b.WriteString("\n")
	}
	switch {
	case c.CanConfirm():
		b.WriteString(dimStyle.Render("      [r] mark as received"))
		b.WriteString("\n")
	case c.CanAccept():
		b.WriteString(dimStyle.Render("      [a] accept food donation"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderNotice() string {
	if !m.hasNotice {
		return ""
	}
	text := m.notice.Title
	if m.notice.Description != "" {
		text += " " + m.notice.Description
	}
	if m.notice.Variant == listing.VariantDestructive {
		return errStyle.Render("  "+text) + "\n\n"
	}
	return okStyle.Render("  "+text) + "\n\n"
}

func (m Model) helpLine() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Accept, m.keys.Confirm, m.keys.Refresh}
	if m.viewer.LoggedIn() {
		bindings = append(bindings, m.keys.Logout)
	} else {
		bindings = append(bindings, m.keys.Login)
	}
	bindings = append(bindings, m.keys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}
