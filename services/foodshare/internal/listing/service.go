package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// ErrLoginRequired is returned when a gated action is attempted while logged out.
var ErrLoginRequired = errors.New("login required")

// ErrNotRecipient is returned when a donor tries to accept a listing.
var ErrNotRecipient = errors.New("only recipients can accept food")

// Variant is the severity of a Notice.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a user-facing notification about an action's outcome.
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// LoginPrompt is shown when a logged-out viewer tries to accept a listing.
var LoginPrompt = Notice{
	Title:       "Please login first",
	Description: "You need to be logged in to accept food donations.",
	Variant:     VariantDestructive,
}

// RecipientOnly is shown when a donor tries to accept a listing.
var RecipientOnly = Notice{
	Title:       "Access denied",
	Description: "Only food recipients can accept donations.",
	Variant:     VariantDestructive,
}

// API is the subset of the remote API the transitions need.
type API interface {
	AcceptFood(ctx context.Context, foodID, donorEmail string, u models.User) error
	ConfirmReceived(ctx context.Context, foodID string) error
}

// Service runs listing transitions against the remote API. It never retries
// and keeps no state: callers refetch after a success.
type Service struct {
	api API
}

// NewService returns a Service backed by api.
func NewService(api API) *Service {
	return &Service{api: api}
}

// Accept claims the listing for v. A logged-out viewer gets LoginPrompt and
// ErrLoginRequired, a donor gets RecipientOnly and ErrNotRecipient, both
// without any remote call. The listing's Email may be empty.
func (s *Service) Accept(ctx context.Context, l models.Listing, v session.Viewer) (Notice, error) {
	u, ok := v.Session()
	if !ok {
		return LoginPrompt, ErrLoginRequired
	}
	if u.Role.IsDonor() {
		return RecipientOnly, ErrNotRecipient
	}

	if err := s.api.AcceptFood(ctx, l.ID, l.Email, u); err != nil {
		return Notice{
			Title:       "Error accepting food",
			Description: "Please try again later.",
			Variant:     VariantDestructive,
		}, fmt.Errorf("accept %s: %w", l.ID, err)
	}

	item := l.Item
	if item == "" {
		item = "this donation"
	}
	return Notice{
		Title:       "Food accepted successfully!",
		Description: fmt.Sprintf("You've accepted %s. The donor will be notified.", item),
		Variant:     VariantDefault,
	}, nil
}

// ConfirmReceived marks the listing as picked up.
func (s *Service) ConfirmReceived(ctx context.Context, foodID string) (Notice, error) {
	if err := s.api.ConfirmReceived(ctx, foodID); err != nil {
		return Notice{
			Title:       "Error confirming receipt",
			Description: "Please try again later.",
			Variant:     VariantDestructive,
		}, fmt.Errorf("confirm received %s: %w", foodID, err)
	}
	return Notice{
		Title:       "Thank you!",
		Description: "Food marked as received and removed from available list.",
		Variant:     VariantDefault,
	}, nil
}
