// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package app

import (
	"context"
	"time"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// defaultRequestTimeout bounds each API call when New is given no timeout.
const defaultRequestTimeout = 10 * time.Second

type appState int

const (
	stateBoard appState = iota
	stateLogin
)

// API is the remote food API as the terminal client uses it.
type API interface {
	listing.API
	AvailableFoods(ctx context.Context) ([]models.Listing, error)
	Login(ctx context.Context, email string) (models.User, error)
}

// SessionStore persists the signed-in user between runs.
type SessionStore interface {
	Save(u models.User) error
	Clear() error
}

// Model is the root bubbletea model for the FoodShare terminal client.
// Exported so tests can construct and drive it directly.
type Model struct {
	state appState

	width  int
	height int

	api      API
	store    SessionStore
	listings *listing.Service
	viewer   session.Viewer
	keys     KeyMap
	timeout  time.Duration

	// Login
	email string

	// Board
	loading   bool
	foods     []models.Listing
	mine      []listing.Card
	available []listing.Card
	cursor    int

	notice    listing.Notice
	hasNotice bool
}

// New creates a Model showing the board for v. Each API call gets its own
// context bounded by timeout. The first fetch is started by Init.
func New(api API, store SessionStore, v session.Viewer, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return Model{
		state:    stateBoard,
		api:      api,
		store:    store,
		listings: listing.NewService(api),
		viewer:   v,
		keys:     DefaultKeyMap,
		timeout:  timeout,
		loading:  true,
	}
}

// Viewer returns who the client is acting as.
func (m Model) Viewer() session.Viewer {
	return m.viewer
}

// rows is every selectable card, the viewer's pending pickups first.
func (m Model) rows() []listing.Card {
	rows := make([]listing.Card, 0, len(m.mine)+len(m.available))
	rows = append(rows, m.mine...)
	return append(rows, m.available...)
}

func (m Model) selected() (listing.Card, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return listing.Card{}, false
	}
	return rows[m.cursor], true
}

// rebuild re-partitions the fetched listings for the current viewer.
func (m *Model) rebuild() {
	p := listing.Partition(m.foods, m.viewer)
	m.mine = listing.RenderAll(p.MinePending, m.viewer)
	m.available = listing.RenderAll(p.Available, m.viewer)

	if n := len(m.mine) + len(m.available); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setNotice(n listing.Notice) {
	m.notice = n
	m.hasNotice = true
}
