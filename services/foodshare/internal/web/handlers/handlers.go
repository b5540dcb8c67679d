package handlers

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/nav"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/web/templates"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// API is the remote food API as the web views use it.
type API interface {
	listing.API
	AvailableFoods(ctx context.Context) ([]models.Listing, error)
	AddFood(ctx context.Context, n models.NewListing) error
	Signup(ctx context.Context, reg models.Registration) error
	Login(ctx context.Context, email string) (models.User, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	api       API
	listings  *listing.Service
	sessions  *session.CookieStore
	nav       *nav.Registry
	secure    bool
	templates map[string]*template.Template
}

// New creates a new handler with parsed templates. secure marks the flash
// cookie Secure, matching the session cookie.
func New(api API, sessions *session.CookieStore, secure bool) *Handler {
	tmplMap := make(map[string]*template.Template)

	// Collect shared templates: base.html + all partials.
	shared := []string{"base.html"}
	partials, err := fs.Glob(templates.FS, "partials/*.html")
	if err != nil {
		log.Fatalf("Error globbing partials: %v", err)
	}
	shared = append(shared, partials...)

	for _, page := range []string{
		"home.html", "dashboard.html", "donor.html", "signup.html", "login.html",
	} {
		files := make([]string, 0, len(shared)+1)
		files = append(files, shared...)
		files = append(files, page)

		tmplMap[page] = template.Must(
			template.New(page).ParseFS(templates.FS, files...),
		)
	}

	return &Handler{
		api:       api,
		listings:  listing.NewService(api),
		sessions:  sessions,
		nav:       nav.New(),
		secure:    secure,
		templates: tmplMap,
	}
}

// Routes registers every page, form and JSON endpoint on r. The session
// middleware runs first so each handler sees the current viewer.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(h.sessions))

		r.Get("/", h.Home)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/donor", h.DonorPage)
		r.Post("/donor", h.AddFood)
		r.Get("/signup", h.SignupPage)
		r.Post("/signup", h.Signup)
		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Post("/foods/{id}/accept", h.AcceptFood)
		r.Post("/foods/{id}/received", h.ConfirmReceived)

		r.Route("/api", func(r chi.Router) {
			r.Get("/actions", h.SearchActions)
		})
	})
}

// --- helpers ---

// apiContext carries the inbound request id to the remote API.
func apiContext(r *http.Request) context.Context {
	return foodapi.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
}

// render executes the page with the viewer, navbar entries, year and any
// pending flash notice added to data. An explicit "Flash" in data wins over
// the cookie.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	tmpl, ok := h.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %s not found", name), http.StatusInternalServerError)
		return
	}

	v := session.FromContext(r.Context())
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Viewer"] = v
	data["Nav"] = h.nav.For(v)
	data["Year"] = time.Now().Year()
	if flash, ok := h.popFlash(w, r); ok {
		if _, set := data["Flash"]; !set {
			data["Flash"] = flash
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}
