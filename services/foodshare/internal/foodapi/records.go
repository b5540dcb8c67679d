package foodapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// Record is a listing as the remote API stores it.
type Record struct {
	ID             string     `json:"_id"`
	FoodItem       string     `json:"foodItem"`
	Availability   FlexString `json:"availability"`
	ExpectedPeople int        `json:"expectedPeople"`
	Location       string     `json:"location"`
	Contact        string     `json:"contact"`
	EmailVal       string     `json:"emailVal"`
	DonorName      string     `json:"donorName,omitempty"`
	Accepted       bool       `json:"accepted"`
	AcceptedBy     string     `json:"acceptedBy,omitempty"`
	Received       bool       `json:"received,omitempty"`
}

// Status derives the listing state from the record flags.
func (r Record) Status() models.Status {
	switch {
	case r.Received:
		return models.StatusReceived
	case r.Accepted:
		return models.StatusWaiting
	default:
		return models.StatusAvailable
	}
}

// Listing maps the record onto the canonical Listing shape.
func (r Record) Listing() models.Listing {
	l := models.Listing{
		ID:             r.ID,
		Item:           r.FoodItem,
		Availability:   displayAvailability(string(r.Availability)),
		ExpectedPeople: r.ExpectedPeople,
		Location:       r.Location,
		Contact:        r.Contact,
		Email:          r.EmailVal,
		DonorName:      r.DonorName,
		Status:         r.Status(),
	}
	if l.Status == models.StatusWaiting {
		l.AcceptedBy = r.AcceptedBy
	}
	return l
}

// displayAvailability appends the "kg" unit to the stored quantity. It is a
// display convention only; free text already carrying the unit is left alone.
func displayAvailability(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasSuffix(strings.ToLower(raw), "kg") {
		return raw
	}
	return raw + " kg"
}

// FlexString is a text field the API sometimes stores as a number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("availability: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// decodeRecords accepts either a bare array or a {"foods": [...]} envelope.
func decodeRecords(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var env struct {
			Foods []Record `json:"foods"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		return env.Foods, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
