// Package nav holds the navigation entries shown in the navbar and returned
// by the quick-action search, filtered by who is looking.
package nav

import (
	"strings"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
)

// EntryType categorizes what an entry does when chosen.
type EntryType string

const (
	TypeLink EntryType = "link"
	// TypeForm entries are submitted with POST (e.g. logout).
	TypeForm EntryType = "form"
)

// Visibility controls when an entry appears.
type Visibility int

const (
	VisibleAlways    Visibility = iota // Everyone sees it
	VisibleLoggedOut                   // Only when not logged in
	VisibleLoggedIn                    // Any signed-in viewer
	VisibleDonor                       // Signed-in donors
	VisibleRecipient                   // Signed-in users and charities
)

// Entry is one navigation target.
type Entry struct {
	ID          string     `json:"id"`
	Type        EntryType  `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Target      string     `json:"target"`
	Keywords    []string   `json:"keywords"`
	Visibility  Visibility `json:"-"`
}

// Registry holds all entries.
type Registry struct {
	entries []Entry
}

// New creates a Registry with the default FoodShare entries.
func New() *Registry {
	return &Registry{entries: defaultEntries()}
}

// For returns the entries visible to v, in registry order.
func (r *Registry) For(v session.Viewer) []Entry {
	return r.Search("", v)
}

// Search returns visible entries matching query. An empty query returns all
// visible entries. Matching is case-insensitive substring.
func (r *Registry) Search(query string, v session.Viewer) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []Entry

	for _, e := range r.entries {
		if !isVisible(e, v) {
			continue
		}
		if q == "" || matchesQuery(e, q) {
			results = append(results, e)
		}
	}
	return results
}

func isVisible(e Entry, v session.Viewer) bool {
	switch e.Visibility {
	case VisibleAlways:
		return true
	case VisibleLoggedOut:
		return !v.LoggedIn()
	case VisibleLoggedIn:
		return v.LoggedIn()
	case VisibleDonor:
		return v.IsDonor()
	case VisibleRecipient:
		return v.IsRecipient()
	default:
		return true
	}
}

func matchesQuery(e Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), q) {
		return true
	}
	for _, kw := range e.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

func defaultEntries() []Entry {
	return []Entry{
		{
			ID:          "nav-home",
			Type:        TypeLink,
			Title:       "Home",
			Description: "Browse available food donations",
			Target:      "/",
			Keywords:    []string{"home", "browse", "donations", "food"},
			Visibility:  VisibleAlways,
		},
		{
			ID:          "nav-login",
			Type:        TypeLink,
			Title:       "Login",
			Description: "Sign in to your account",
			Target:      "/login",
			Keywords:    []string{"login", "sign in", "signin", "account"},
			Visibility:  VisibleLoggedOut,
		},
		{
			ID:          "nav-signup",
			Type:        TypeLink,
			Title:       "Sign Up",
			Description: "Join FoodShare as a donor, individual or charity",
			Target:      "/signup",
			Keywords:    []string{"signup", "sign up", "register", "join", "create account"},
			Visibility:  VisibleLoggedOut,
		},
		{
			ID:          "nav-dashboard",
			Type:        TypeLink,
			Title:       "Food Dashboard",
			Description: "Accept donations and track pickups",
			Target:      "/dashboard",
			Keywords:    []string{"dashboard", "accept", "pickup", "claimed", "mine"},
			Visibility:  VisibleRecipient,
		},
		{
			ID:          "nav-donor",
			Type:        TypeLink,
			Title:       "Donor Dashboard",
			Description: "Add a food donation",
			Target:      "/donor",
			Keywords:    []string{"donor", "donate", "add", "share", "surplus"},
			Visibility:  VisibleDonor,
		},
		{
			ID:          "fn-logout",
			Type:        TypeForm,
			Title:       "Logout",
			Description: "Sign out of your account",
			Target:      "/logout",
			Keywords:    []string{"logout", "log out", "sign out", "exit"},
			Visibility:  VisibleLoggedIn,
		},
	}
}
