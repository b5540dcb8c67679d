// Package forms validates user input before it is sent to the remote API.
// Validation is synchronous and field-agnostic: a failed form reports one
// notice, not per-field errors.
package forms

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

var (
	ErrMissingFields = errors.New("missing information")
	ErrInvalidNumber = errors.New("invalid number")
)

// Message returns the notification title and description for a validation error.
func Message(err error) (title, description string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		return "Missing information", "Please fill in all fields."
	case errors.Is(err, ErrInvalidNumber):
		return "Invalid number", "Please enter a valid number of people."
	default:
		return "Invalid input", "Please check the form and try again."
	}
}

// Signup is the raw signup form.
type Signup struct {
	Name     string
	Email    string
	Location string
	UserType string
}

// Validate returns the registration to submit.
func (f Signup) Validate() (models.Registration, error) {
	reg := models.Registration{
		Name:     clean(f.Name),
		Email:    cleanEmail(f.Email),
		Location: clean(f.Location),
		Role:     models.Role(clean(f.UserType)),
	}
	if reg.Name == "" || reg.Email == "" || reg.Location == "" || reg.Role == "" {
		return models.Registration{}, ErrMissingFields
	}
	// An unknown account type means nothing valid was selected.
	if !reg.Role.Valid() {
		return models.Registration{}, ErrMissingFields
	}
	return reg, nil
}

// Listing is the raw add-listing form.
type Listing struct {
	Item           string
	Availability   string
	ExpectedPeople string
	Location       string
	Contact        string
	Email          string
}

// Validate returns the listing to submit. ExpectedPeople must be a whole
// number greater than zero.
func (f Listing) Validate() (models.NewListing, error) {
	n := models.NewListing{
		Item:         clean(f.Item),
		Availability: clean(f.Availability),
		Location:     clean(f.Location),
		Contact:      clean(f.Contact),
		Email:        cleanEmail(f.Email),
	}
	people := clean(f.ExpectedPeople)
	if n.Item == "" || n.Availability == "" || people == "" ||
		n.Location == "" || n.Contact == "" || n.Email == "" {
		return models.NewListing{}, ErrMissingFields
	}

	count, err := strconv.Atoi(people)
	if err != nil || count <= 0 {
		return models.NewListing{}, ErrInvalidNumber
	}
	n.ExpectedPeople = count
	return n, nil
}

// Login is the raw login form.
type Login struct {
	Email string
}

// Validate returns the email to log in with.
func (f Login) Validate() (string, error) {
	email := cleanEmail(f.Email)
	if email == "" {
		return "", ErrMissingFields
	}
	return email, nil
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func cleanEmail(s string) string {
	return strings.ToLower(clean(s))
}
