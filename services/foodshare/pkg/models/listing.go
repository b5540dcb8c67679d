package models

import "fmt"

// Status represents the lifecycle state of a food listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusWaiting   Status = "waiting"
	StatusReceived  Status = "received"
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusWaiting, StatusReceived:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown listing status %q", raw)
	}
	return s, nil
}

// Listing is a donor-submitted food item. It is the only entity with a
// lifecycle; AcceptedBy is set iff Status is StatusWaiting.
type Listing struct {
	ID             string `json:"id"`
	Item           string `json:"item"`
	Availability   string `json:"availability"`
	ExpectedPeople int    `json:"expected_people"`
	Location       string `json:"location"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
	DonorName      string `json:"donor_name,omitempty"`
	Status         Status `json:"status"`
	AcceptedBy     string `json:"accepted_by,omitempty"`
}

// NewListing is a validated add-listing submission.
type NewListing struct {
	Item           string
	Availability   string
	ExpectedPeople int
	Location       string
	Contact        string
	Email          string
}
