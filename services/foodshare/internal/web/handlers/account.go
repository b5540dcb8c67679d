package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/forms"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

var signupRoles = []models.Role{models.RoleDonor, models.RoleUser, models.RoleCharity}

// SignupPage renders the signup form.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup.html", map[string]interface{}{
		"Title": "Sign Up",
		"Form":  forms.Signup{},
		"Roles": signupRoles,
	})
}

// Signup handles signup form submission.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("Error parsing signup form: %v", err)
		h.signupError(w, r, forms.Signup{}, invalidForm)
		return
	}

	form := forms.Signup{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Location: r.FormValue("location"),
		UserType: r.FormValue("userType"),
	}

	reg, err := form.Validate()
	if err != nil {
		h.signupError(w, r, form, validationNotice(err))
		return
	}

	if err := h.api.Signup(apiContext(r), reg); err != nil {
		log.Printf("Signup failed for %s: %v", reg.Email, err)
		h.signupError(w, r, form, failureNotice("Signup failed", err))
		return
	}

	h.redirectWithNotice(w, r, "/login", listing.Notice{
		Title:       "Account created successfully!",
		Description: "Welcome to FoodShare. Please login to continue.",
		Variant:     listing.VariantDefault,
	})
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", map[string]interface{}{
		"Title": "Login",
	})
}

// Login looks the account up on the remote API and stores it as the session.
// Donors land on their dashboard, everyone else on the food dashboard.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("Error parsing login form: %v", err)
		h.loginError(w, r, "", invalidForm)
		return
	}

	raw := r.FormValue("email")
	email, err := forms.Login{Email: raw}.Validate()
	if err != nil {
		h.loginError(w, r, raw, validationNotice(err))
		return
	}

	u, err := h.api.Login(apiContext(r), email)
	if err != nil {
		log.Printf("Login failed for %s: %v", email, err)
		var se *foodapi.StatusError
		if errors.As(err, &se) {
			h.loginError(w, r, raw, listing.Notice{
				Title:       "Login failed",
				Description: "Check your email address and try again.",
				Variant:     listing.VariantDestructive,
			})
			return
		}
		h.loginError(w, r, raw, connectionError)
		return
	}

	if err := h.sessions.Save(w, u); err != nil {
		log.Printf("Error saving session for %s: %v", email, err)
		h.loginError(w, r, raw, listing.Notice{
			Title:       "Login failed",
			Description: "Please try again.",
			Variant:     listing.VariantDestructive,
		})
		return
	}

	next := "/dashboard"
	if u.Role.IsDonor() {
		next = "/donor"
	}
	h.redirectWithNotice(w, r, next, listing.Notice{
		Title:   fmt.Sprintf("Welcome back, %s!", u.Name),
		Variant: listing.VariantDefault,
	})
}

// Logout clears the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	h.redirectWithNotice(w, r, "/", listing.Notice{
		Title:       "Logged out successfully",
		Description: "See you again soon!",
		Variant:     listing.VariantDefault,
	})
}

func (h *Handler) signupError(w http.ResponseWriter, r *http.Request, form forms.Signup, n listing.Notice) {
	h.render(w, r, http.StatusUnprocessableEntity, "signup.html", map[string]interface{}{
		"Title": "Sign Up",
		"Form":  form,
		"Roles": signupRoles,
		"Flash": n,
	})
}

func (h *Handler) loginError(w http.ResponseWriter, r *http.Request, email string, n listing.Notice) {
	h.render(w, r, http.StatusUnprocessableEntity, "login.html", map[string]interface{}{
		"Title": "Login",
		"Email": email,
		"Flash": n,
	})
}
