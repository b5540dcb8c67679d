package listing

import (
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// Action is the button a card offers its viewer.
type Action int

const (
	ActionNone Action = iota
	ActionAccept
	ActionConfirmReceived
)

// Card is a listing prepared for one viewer.
type Card struct {
	models.Listing
	Action Action
	// AwaitingPickup shows the passive "waiting for pickup by" indicator.
	AwaitingPickup bool
}

// CanAccept is a template convenience.
func (c Card) CanAccept() bool { return c.Action == ActionAccept }

// CanConfirm is a template convenience.
func (c Card) CanConfirm() bool { return c.Action == ActionConfirmReceived }

// Render prepares l for v. The second result is false when the listing must
// not be shown to this viewer at all.
//
// Matching the claimant by display name is a convenience for the viewer, not
// an access check; the remote API owns authorization.
func Render(l models.Listing, v session.Viewer) (Card, bool) {
	card := Card{Listing: l}

	switch l.Status {
	case models.StatusAvailable:
		if !v.IsDonor() {
			card.Action = ActionAccept
		}
		return card, true

	case models.StatusWaiting:
		if v.IsDonor() {
			return card, false
		}
		card.AwaitingPickup = true
		if IsClaimant(l, v) {
			card.Action = ActionConfirmReceived
		}
		return card, true

	case models.StatusReceived:
		return card, false
	}
	return card, false
}

// RenderAll renders every visible listing, keeping order.
func RenderAll(listings []models.Listing, v session.Viewer) []Card {
	cards := make([]Card, 0, len(listings))
	for _, l := range listings {
		if c, ok := Render(l, v); ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// IsClaimant reports whether v accepted l.
func IsClaimant(l models.Listing, v session.Viewer) bool {
	name := v.Name()
	return v.LoggedIn() && name != "" && l.AcceptedBy == name
}
