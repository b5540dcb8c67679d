package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/nav"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
)

// SearchActions returns navigation entries matching the query parameter "q",
// filtered by who is asking.
func (h *Handler) SearchActions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.nav.Search(query, session.FromContext(r.Context()))
	if results == nil {
		results = []nav.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
