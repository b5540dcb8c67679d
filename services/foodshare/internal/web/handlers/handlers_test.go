package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi/foodapitest"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/listing"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/nav"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

var (
	alice = models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
	bob   = models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleCharity}
	dana  = models.User{Name: "Dana", Email: "dana@example.com", Role: models.RoleDonor}
)

type testEnv struct {
	fake   *foodapitest.API
	store  *session.CookieStore
	router chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := foodapitest.New()
	srv := fake.Start()
	t.Cleanup(srv.Close)

	return newTestEnvWithURL(t, fake, srv.URL)
}

func newTestEnvWithURL(t *testing.T, fake *foodapitest.API, baseURL string) *testEnv {
	t.Helper()
	store := session.NewCookieStore("test-secret", session.CookieOptions{Issuer: "foodshare"})
	h := New(foodapi.New(baseURL), store, false)

	r := chi.NewRouter()
	h.Routes(r)
	return &testEnv{fake: fake, store: store, router: r}
}

// do serves one request as u (anonymous when u is nil).
func (e *testEnv) do(t *testing.T, method, target string, form url.Values, u *models.User) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if u != nil {
		token, err := e.store.Encode(*u)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "user", Value: token})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) listing.Notice {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.Value != "" {
			data, err := base64.RawURLEncoding.DecodeString(c.Value)
			require.NoError(t, err)
			var n listing.Notice
			require.NoError(t, json.Unmarshal(data, &n))
			return n
		}
	}
	t.Fatal("no flash cookie set")
	return listing.Notice{}
}

func TestHome_CardsPerViewer(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(
		foodapi.Record{ID: "f1", FoodItem: "Rice", Availability: "10", ExpectedPeople: 8},
		foodapi.Record{ID: "f2", FoodItem: "Soup", Accepted: true, AcceptedBy: "Bob"},
		foodapi.Record{ID: "f3", FoodItem: "Cake", Accepted: true, AcceptedBy: "Bob", Received: true},
	)

	t.Run("anonymous", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Rice")
		assert.Contains(t, body, "10 kg")
		assert.Contains(t, body, `action="/foods/f1/accept"`)
		assert.Contains(t, body, "Waiting for pickup by Bob")
		assert.NotContains(t, body, "Cake")
		assert.Contains(t, body, "Join FoodShare")
	})

	t.Run("donor sees no actions and no waiting cards", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/", nil, &dana)
		body := rec.Body.String()
		assert.Contains(t, body, "Rice")
		assert.NotContains(t, body, "/foods/f1/accept")
		assert.NotContains(t, body, "Soup")
	})

	t.Run("claimant gets confirm action", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/", nil, &bob)
		body := rec.Body.String()
		assert.Contains(t, body, `action="/foods/f2/received"`)
	})
}

func TestHome_WaitingForSomeoneElse(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(foodapi.Record{ID: "f9", FoodItem: "Bread", Accepted: true, AcceptedBy: "Bob"})

	rec := e.do(t, http.MethodGet, "/", nil, &alice)
	body := rec.Body.String()
	assert.Contains(t, body, "Waiting for pickup by Bob")
	assert.NotContains(t, body, "/foods/f9/accept")
	assert.NotContains(t, body, "/foods/f9/received")
}

func TestHome_FetchFailureShowsNotice(t *testing.T) {
	e := newTestEnv(t)
	e.fake.FailNext(foodapi.PathAvailableFoods, http.StatusInternalServerError)

	rec := e.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error loading foods")
	assert.NotContains(t, rec.Body.String(), "No food donations available")
}

func TestDashboard_AccessDenied(t *testing.T) {
	e := newTestEnv(t)

	for name, u := range map[string]*models.User{"anonymous": nil, "donor": &dana} {
		t.Run(name, func(t *testing.T) {
			rec := e.do(t, http.MethodGet, "/dashboard", nil, u)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), "Access denied. This page is for food recipients.")
		})
	}
	assert.Empty(t, e.fake.CallsTo(foodapi.PathAvailableFoods))
}

func TestDashboard_Partitions(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(
		foodapi.Record{ID: "f1", FoodItem: "Rice"},
		foodapi.Record{ID: "f2", FoodItem: "Soup", Accepted: true, AcceptedBy: "Alice"},
		foodapi.Record{ID: "f3", FoodItem: "Stew", Accepted: true, AcceptedBy: "Bob"},
	)

	rec := e.do(t, http.MethodGet, "/dashboard", nil, &alice)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "My Accepted Foods")
	assert.Contains(t, body, "1 waiting for pickup")
	assert.Contains(t, body, "1 available")
	assert.Contains(t, body, `action="/foods/f2/received"`)
	assert.Contains(t, body, `action="/foods/f1/accept"`)
	assert.NotContains(t, body, "Stew")
}

func TestAcceptFood_LoggedOutPromptsLogin(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(foodapi.Record{ID: "f1", FoodItem: "Rice"})

	rec := e.do(t, http.MethodPost, "/foods/f1/accept", url.Values{"item": {"Rice"}, "next": {"/"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, listing.LoginPrompt, flashFrom(t, rec))
	assert.Empty(t, e.fake.CallsTo(foodapi.PathAcceptFood))
}

func TestAcceptFood_DonorIsRefused(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(foodapi.Record{ID: "f1", FoodItem: "Rice"})

	rec := e.do(t, http.MethodPost, "/foods/f1/accept", url.Values{"item": {"Rice"}, "next": {"/"}}, &dana)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/donor", rec.Header().Get("Location"))
	assert.Equal(t, listing.RecipientOnly, flashFrom(t, rec))
	assert.Empty(t, e.fake.CallsTo(foodapi.PathAcceptFood))

	stored, ok := e.fake.Record("f1")
	require.True(t, ok)
	assert.False(t, stored.Accepted)
	assert.Empty(t, stored.AcceptedBy)
}

func TestAcceptFood_MovesToMinePending(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(foodapi.Record{ID: "f1", FoodItem: "Rice", EmailVal: "donor@example.com"})

	rec := e.do(t, http.MethodPost, "/foods/f1/accept", url.Values{
		"item":        {"Rice"},
		"donor_email": {"donor@example.com"},
		"next":        {"/dashboard"},
	}, &alice)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Equal(t, "Food accepted successfully!", flashFrom(t, rec).Title)

	calls := e.fake.CallsTo(foodapi.PathAcceptFood)
	require.Len(t, calls, 1)
	assert.Equal(t, "f1", calls[0].Body["foodId"])
	assert.Equal(t, "donor@example.com", calls[0].Body["donorEmail"])
	assert.Equal(t, "Alice", calls[0].Body["userName"])
	assert.Equal(t, "alice@example.com", calls[0].Body["userEmail"])

	body := e.do(t, http.MethodGet, "/dashboard", nil, &alice).Body.String()
	assert.Contains(t, body, "0 available")
	assert.Contains(t, body, "1 waiting for pickup")
	assert.NotContains(t, body, "/foods/f1/accept")
	assert.Contains(t, body, "/foods/f1/received")
}

func TestAcceptFood_FailureLeavesListing(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(foodapi.Record{ID: "f1", FoodItem: "Rice"})
	e.fake.FailNext(foodapi.PathAcceptFood, http.StatusInternalServerError)

	rec := e.do(t, http.MethodPost, "/foods/f1/accept", url.Values{"next": {"/dashboard"}}, &alice)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	n := flashFrom(t, rec)
	assert.Equal(t, "Error accepting food", n.Title)
	assert.Equal(t, "Please try again later.", n.Description)
	assert.Equal(t, listing.VariantDestructive, n.Variant)

	body := e.do(t, http.MethodGet, "/dashboard", nil, &alice).Body.String()
	assert.Contains(t, body, "1 available")
	assert.Contains(t, body, "/foods/f1/accept")
}

func TestConfirmReceived_RemovesFromBothPartitions(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(foodapi.Record{ID: "f2", FoodItem: "Soup", Accepted: true, AcceptedBy: "Alice"})

	rec := e.do(t, http.MethodPost, "/foods/f2/received", url.Values{"next": {"/dashboard"}}, &alice)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Thank you!", flashFrom(t, rec).Title)
	require.Len(t, e.fake.CallsTo(foodapi.PathConfirmReceived), 1)

	body := e.do(t, http.MethodGet, "/dashboard", nil, &alice).Body.String()
	assert.NotContains(t, body, "Soup")
	assert.NotContains(t, body, "My Accepted Foods")
}

func TestConfirmReceived_FailureKeepsPending(t *testing.T) {
	e := newTestEnv(t)
	e.fake.Seed(foodapi.Record{ID: "f2", FoodItem: "Soup", Accepted: true, AcceptedBy: "Alice"})
	e.fake.FailNext(foodapi.PathConfirmReceived, http.StatusBadGateway)

	rec := e.do(t, http.MethodPost, "/foods/f2/received", url.Values{"next": {"/dashboard"}}, &alice)
	assert.Equal(t, "Error confirming receipt", flashFrom(t, rec).Title)

	body := e.do(t, http.MethodGet, "/dashboard", nil, &alice).Body.String()
	assert.Contains(t, body, "1 waiting for pickup")
}

func TestAddFood_InvalidNumberNeverCallsAPI(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/donor", url.Values{
		"item":           {"Vegetables"},
		"availability":   {"5"},
		"expectedPeople": {"0"},
		"location":       {"Market Sq"},
		"contact":        {"555-0100"},
		"email":          {"dana@example.com"},
	}, &dana)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid number")
	assert.Contains(t, rec.Body.String(), "Vegetables")
	assert.Empty(t, e.fake.CallsTo(foodapi.PathAddData))
}

func TestAddFood_MissingFields(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/donor", url.Values{"item": {"Vegetables"}, "location": {"  "}}, &dana)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing information")
	assert.Empty(t, e.fake.CallsTo(foodapi.PathAddData))
}

func TestAddFood_Success(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/donor", url.Values{
		"item":           {"Vegetables"},
		"availability":   {"5"},
		"expectedPeople": {"12"},
		"location":       {"Market Sq"},
		"contact":        {"555-0100"},
		"email":          {"Dana@Example.com"},
	}, &dana)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/donor", rec.Header().Get("Location"))
	assert.Equal(t, "Food donation added successfully!", flashFrom(t, rec).Title)

	calls := e.fake.CallsTo(foodapi.PathAddData)
	require.Len(t, calls, 1)
	assert.Equal(t, "Vegetables", calls[0].Body["foodItem"])
	assert.Equal(t, float64(12), calls[0].Body["expectedPeople"])
	assert.Equal(t, "dana@example.com", calls[0].Body["emailVal"])
}

func TestAddFood_ServerMessageSurfaced(t *testing.T) {
	e := newTestEnv(t)
	e.fake.FailNext(foodapi.PathAddData, http.StatusBadRequest)

	rec := e.do(t, http.MethodPost, "/donor", url.Values{
		"item":           {"Vegetables"},
		"availability":   {"5"},
		"expectedPeople": {"12"},
		"location":       {"Market Sq"},
		"contact":        {"555-0100"},
		"email":          {"dana@example.com"},
	}, &dana)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to add donation")
	assert.Contains(t, rec.Body.String(), "Bad Request")
}

func TestDonorPage_AccessDenied(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/donor", nil, &alice)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), donorsOnly)

	rec = e.do(t, http.MethodPost, "/donor", url.Values{"item": {"x"}}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, e.fake.CallsTo(foodapi.PathAddData))

	rec = e.do(t, http.MethodGet, "/donor", nil, &dana)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Add Food Donation")
}

func TestSignup(t *testing.T) {
	e := newTestEnv(t)

	form := url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"location": {"Springfield"},
		"userType": {"user"},
	}

	rec := e.do(t, http.MethodPost, "/signup", form, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, "Account created successfully!", flashFrom(t, rec).Title)

	rec = e.do(t, http.MethodPost, "/signup", form, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signup failed")
	assert.Contains(t, rec.Body.String(), "An account with this email already exists")
	assert.Len(t, e.fake.CallsTo(foodapi.PathSignup), 2)
}

func TestSignup_Validation(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/signup", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"location": {"Springfield"},
		"userType": {"admin"},
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing information")
	assert.Empty(t, e.fake.CallsTo(foodapi.PathSignup))
}

func TestSignup_ConnectionError(t *testing.T) {
	fake := foodapitest.New()
	srv := fake.Start()
	baseURL := srv.URL
	srv.Close()

	e := newTestEnvWithURL(t, fake, baseURL)
	rec := e.do(t, http.MethodPost, "/signup", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"location": {"Springfield"},
		"userType": {"charity"},
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Connection error")
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	e.fake.AddAccount(foodapitest.Account{Name: "Dana", Email: "dana@example.com", UserType: "donor"})
	e.fake.AddAccount(foodapitest.Account{Name: "Alice", Email: "alice@example.com", UserType: "user"})

	tests := []struct {
		email string
		want  string
		user  models.User
	}{
		{"Dana@example.com ", "/donor", dana},
		{"alice@example.com", "/dashboard", alice},
	}
	for _, tt := range tests {
		t.Run(tt.user.Name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/login", url.Values{"email": {tt.email}}, nil)
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))

			var token string
			for _, c := range rec.Result().Cookies() {
				if c.Name == "user" {
					token = c.Value
				}
			}
			require.NotEmpty(t, token)
			got, err := e.store.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tt.user, got)
		})
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/login", url.Values{"email": {"nobody@example.com"}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login failed")

	rec = e.do(t, http.MethodPost, "/login", url.Values{"email": {""}}, nil)
	assert.Contains(t, rec.Body.String(), "Missing information")
	assert.Len(t, e.fake.CallsTo(foodapi.PathLogin), 1)
}

func TestLogout(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/logout", nil, &alice)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "Logged out successfully", flashFrom(t, rec).Title)

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "user" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestFlashShownOnce(t *testing.T) {
	e := newTestEnv(t)
	h := New(foodapi.New("http://127.0.0.1:0"), e.store, false)

	w := httptest.NewRecorder()
	h.setFlash(w, listing.Notice{Title: "Account created successfully!"})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "Account created successfully!")
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestNavbarFollowsViewer(t *testing.T) {
	e := newTestEnv(t)

	body := e.do(t, http.MethodGet, "/login", nil, nil).Body.String()
	assert.Contains(t, body, `href="/signup"`)
	assert.NotContains(t, body, `action="/logout"`)

	body = e.do(t, http.MethodGet, "/login", nil, &dana).Body.String()
	assert.Contains(t, body, "Welcome, <strong>Dana</strong>")
	assert.Contains(t, body, `href="/donor"`)
	assert.Contains(t, body, `action="/logout"`)
	assert.NotContains(t, body, `href="/dashboard"`)
}

func TestSearchActions(t *testing.T) {
	e := newTestEnv(t)

	ids := func(rec *httptest.ResponseRecorder) []string {
		var entries []nav.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		out := make([]string, 0, len(entries))
		for _, en := range entries {
			out = append(out, en.ID)
		}
		return out
	}

	rec := e.do(t, http.MethodGet, "/api/actions", nil, nil)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.ElementsMatch(t, []string{"nav-home", "nav-login", "nav-signup"}, ids(rec))

	rec = e.do(t, http.MethodGet, "/api/actions?q=donat", nil, &dana)
	assert.Contains(t, ids(rec), "nav-donor")
	assert.NotContains(t, ids(rec), "nav-dashboard")

	rec = e.do(t, http.MethodGet, "/api/actions?q=zzz", nil, &alice)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestReturnPath(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/dashboard", "/dashboard"},
		{"", "/"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
		{`/\evil.example`, "/"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"next": {tt.next}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.Equal(t, tt.want, returnPath(req), tt.next)
	}
}
