package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/forms"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
)

const donorsOnly = "Access denied. This page is only for donors."

// DonorPage renders the add-listing form.
func (h *Handler) DonorPage(w http.ResponseWriter, r *http.Request) {
	if !session.FromContext(r.Context()).IsDonor() {
		h.donorDenied(w, r)
		return
	}
	h.render(w, r, http.StatusOK, "donor.html", map[string]interface{}{
		"Title": "Donor Dashboard",
		"Form":  forms.Listing{},
	})
}

// AddFood validates the add-listing form and submits it. Validation failures
// never reach the remote API.
func (h *Handler) AddFood(w http.ResponseWriter, r *http.Request) {
	if !session.FromContext(r.Context()).IsDonor() {
		h.donorDenied(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		log.Printf("Error parsing donor form: %v", err)
		h.donorError(w, r, forms.Listing{}, invalidForm)
		return
	}

	form := forms.Listing{
		Item:           r.FormValue("item"),
		Availability:   r.FormValue("availability"),
		ExpectedPeople: r.FormValue("expectedPeople"),
		Location:       r.FormValue("location"),
		Contact:        r.FormValue("contact"),
		Email:          r.FormValue("email"),
	}

	n, err := form.Validate()
	if err != nil {
		h.donorError(w, r, form, validationNotice(err))
		return
	}

	if err := h.api.AddFood(apiContext(r), n); err != nil {
		log.Printf("Add food failed for %s: %v", n.Email, err)
		h.donorError(w, r, form, failureNotice("Failed to add donation", err))
		return
	}

	h.redirectWithNotice(w, r, "/donor", listing.Notice{
		Title:       "Food donation added successfully!",
		Description: "Your donation is now available for others to accept.",
		Variant:     listing.VariantDefault,
	})
}

func (h *Handler) donorDenied(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusForbidden, "donor.html", map[string]interface{}{
		"Title":  "Donor Dashboard",
		"Denied": donorsOnly,
	})
}

func (h *Handler) donorError(w http.ResponseWriter, r *http.Request, form forms.Listing, n listing.Notice) {
	h.render(w, r, http.StatusUnprocessableEntity, "donor.html", map[string]interface{}{
		"Title": "Donor Dashboard",
		"Form":  form,
		"Flash": n,
	})
}

var invalidForm = listing.Notice{
	Title:       "Invalid form data",
	Description: "Please try again.",
	Variant:     listing.VariantDestructive,
}

var connectionError = listing.Notice{
	Title:       "Connection error",
	Description: "Please check your connection and try again.",
	Variant:     listing.VariantDestructive,
}

func validationNotice(err error) listing.Notice {
	title, desc := forms.Message(err)
	return listing.Notice{Title: title, Description: desc, Variant: listing.VariantDestructive}
}

// failureNotice surfaces the server-provided message for a rejected
// submission. A request that never got a response is a connection error.
func failureNotice(title string, err error) listing.Notice {
	var se *foodapi.StatusError
	if !errors.As(err, &se) {
		return connectionError
	}
	desc := se.Message
	if desc == "" {
		desc = "Please try again"
	}
	return listing.Notice{Title: title, Description: desc, Variant: listing.VariantDestructive}
}
