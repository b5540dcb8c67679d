package listing

import (
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// Partitions is a fetched collection split for one viewer.
type Partitions struct {
	Available   []models.Listing
	MinePending []models.Listing
}

// Partition splits listings into those open to claim and those the viewer
// accepted and has not picked up yet. Order follows the input.
func Partition(listings []models.Listing, v session.Viewer) Partitions {
	var p Partitions
	for _, l := range listings {
		switch l.Status {
		case models.StatusAvailable:
			p.Available = append(p.Available, l)
		case models.StatusWaiting:
			if IsClaimant(l, v) {
				p.MinePending = append(p.MinePending, l)
			}
		}
	}
	return p
}

// Remove returns listings without the one with id.
func Remove(listings []models.Listing, id string) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// Find returns the listing with id.
func Find(listings []models.Listing, id string) (models.Listing, bool) {
	for _, l := range listings {
		if l.ID == id {
			return l, true
		}
	}
	return models.Listing{}, false
}
