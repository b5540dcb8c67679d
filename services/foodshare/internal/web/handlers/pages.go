package handlers

import (
	"log"
	"net/http"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

var loadFailed = listing.Notice{
	Title:       "Error loading foods",
	Description: "Please try refreshing the page.",
	Variant:     listing.VariantDestructive,
}

// CardView is a card plus where its action form returns to.
type CardView struct {
	listing.Card
	Next string
}

func cardViews(listings []models.Listing, v session.Viewer, next string) []CardView {
	cards := listing.RenderAll(listings, v)
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, CardView{Card: c, Next: next})
	}
	return views
}

// Home renders the landing page with every listing the viewer may see.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	v := session.FromContext(r.Context())
	data := map[string]interface{}{"Title": ""}

	foods, err := h.api.AvailableFoods(apiContext(r))
	if err != nil {
		log.Printf("Error fetching foods: %v", err)
		data["LoadFailed"] = true
		data["Flash"] = loadFailed
	}
	data["Cards"] = cardViews(foods, v, "/")

	h.render(w, r, http.StatusOK, "home.html", data)
}

// Dashboard renders the recipient dashboard: the viewer's accepted listings
// awaiting pickup and the listings still open to claim. Both are refetched on
// every render.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	v := session.FromContext(r.Context())
	if !v.IsRecipient() {
		h.render(w, r, http.StatusForbidden, "dashboard.html", map[string]interface{}{
			"Title":  "Food Dashboard",
			"Denied": "Access denied. This page is for food recipients.",
		})
		return
	}

	data := map[string]interface{}{"Title": "Food Dashboard"}

	foods, err := h.api.AvailableFoods(apiContext(r))
	if err != nil {
		log.Printf("Error fetching foods for %s: %v", v.Name(), err)
		data["LoadFailed"] = true
		data["Flash"] = loadFailed
	}
	p := listing.Partition(foods, v)
	data["Mine"] = cardViews(p.MinePending, v, "/dashboard")
	data["Available"] = cardViews(p.Available, v, "/dashboard")

	h.render(w, r, http.StatusOK, "dashboard.html", data)
}
