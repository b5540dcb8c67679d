// Package listing implements the lifecycle of a food listing:
// available -> waiting -> received.
//
// The transition table lives in Next. Render decides what a viewer sees on a
// listing card, Partition splits a fetched collection for the dashboard, and
// Service runs the remote calls behind the accept and receive actions.
package listing

import (
	"errors"
	"fmt"

	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// ErrInvalidTransition is returned for a trigger the current state does not accept.
var ErrInvalidTransition = errors.New("invalid listing transition")

// Trigger is a viewer action that moves a listing forward.
type Trigger int

const (
	TriggerAccept Trigger = iota + 1
	TriggerConfirmReceived
)

func (t Trigger) String() string {
	switch t {
	case TriggerAccept:
		return "accept"
	case TriggerConfirmReceived:
		return "confirm-received"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// Event is what a successful transition means for the views holding the listing.
type Event int

const (
	// EventReclassified: the listing moved to another partition.
	EventReclassified Event = iota + 1
	// EventRemoved: the listing left every active view.
	EventRemoved
)

// Next returns the state reached from s by t.
func Next(s models.Status, t Trigger) (models.Status, error) {
	switch s {
	case models.StatusAvailable:
		if t == TriggerAccept {
			return models.StatusWaiting, nil
		}
	case models.StatusWaiting:
		if t == TriggerConfirmReceived {
			return models.StatusReceived, nil
		}
	case models.StatusReceived:
		// terminal
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
	}
	return "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, t, s)
}

// Apply moves a local copy of l forward. claimant is the accepting viewer's
// name and is only used by TriggerAccept.
func Apply(l models.Listing, t Trigger, claimant string) (models.Listing, Event, error) {
	next, err := Next(l.Status, t)
	if err != nil {
		return l, 0, err
	}

	l.Status = next
	switch next {
	case models.StatusWaiting:
		l.AcceptedBy = claimant
		return l, EventReclassified, nil
	case models.StatusReceived:
		l.AcceptedBy = ""
		return l, EventRemoved, nil
	}
	return l, 0, fmt.Errorf("%w: unexpected target %s", ErrInvalidTransition, next)
}
