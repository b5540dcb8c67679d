package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
)

const flashCookie = "flash"

// setFlash stores n for the next rendered page. Notices survive exactly one
// redirect.
func (h *Handler) setFlash(w http.ResponseWriter, n listing.Notice) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending notice.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) (listing.Notice, bool) {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return listing.Notice{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return listing.Notice{}, false
	}
	var n listing.Notice
	if err := json.Unmarshal(data, &n); err != nil || n.Title == "" {
		return listing.Notice{}, false
	}
	return n, true
}

// redirectWithNotice sets the flash and redirects with 303 See Other.
func (h *Handler) redirectWithNotice(w http.ResponseWriter, r *http.Request, to string, n listing.Notice) {
	h.setFlash(w, n)
	http.Redirect(w, r, to, http.StatusSeeOther)
}
