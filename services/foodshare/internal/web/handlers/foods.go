package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// AcceptFood handles POST /foods/{id}/accept. A logged-out viewer is sent to
// the login page and a donor back to the donor page. Neither reaches the
// remote API.
func (h *Handler) AcceptFood(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	l := models.Listing{
		ID:     chi.URLParam(r, "id"),
		Item:   r.FormValue("item"),
		Email:  r.FormValue("donor_email"),
		Status: models.StatusAvailable,
	}
	v := session.FromContext(r.Context())

	notice, err := h.listings.Accept(apiContext(r), l, v)
	switch {
	case errors.Is(err, listing.ErrLoginRequired):
		h.redirectWithNotice(w, r, "/login", notice)
		return
	case errors.Is(err, listing.ErrNotRecipient):
		h.redirectWithNotice(w, r, "/donor", notice)
		return
	case err != nil:
		log.Printf("Accept failed for %s: %v", v.Name(), err)
	}
	h.redirectWithNotice(w, r, returnPath(r), notice)
}

// ConfirmReceived handles POST /foods/{id}/received. Only the claimant's card
// offers this action; the remote API decides whether it is allowed.
func (h *Handler) ConfirmReceived(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	notice, err := h.listings.ConfirmReceived(apiContext(r), id)
	if err != nil {
		log.Printf("Confirm received failed for %s: %v", id, err)
	}
	h.redirectWithNotice(w, r, returnPath(r), notice)
}

// returnPath is the local page the action came from, "/" otherwise.
func returnPath(r *http.Request) string {
	next := r.FormValue("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	return next
}
