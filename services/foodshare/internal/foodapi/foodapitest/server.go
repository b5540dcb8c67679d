// Package foodapitest provides an in-process implementation of the remote
// food API for tests and local development.
package foodapitest

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi"
)

// Call is one request received by the fake.
type Call struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// Account is a registered user as the fake stores it.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
	UserType string `json:"userType"`
}

// API is an in-memory remote API. The zero value is not usable; call New.
type API struct {
	mu       sync.Mutex
	records  []foodapi.Record
	accounts map[string]Account
	calls    []Call
	failures map[string]int // path -> status for the next call
	router   chi.Router
}

// New returns an empty fake API.
func New() *API {
	a := &API{
		accounts: make(map[string]Account),
		failures: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(a.record)
	r.Get(foodapi.PathAvailableFoods, a.availableFoods)
	r.Post(foodapi.PathAcceptFood, a.acceptFood)
	r.Post(foodapi.PathConfirmReceived, a.confirmReceived)
	r.Post(foodapi.PathAddData, a.addData)
	r.Post(foodapi.PathSignup, a.signup)
	r.Post(foodapi.PathLogin, a.login)
	a.router = r
	return a
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start serves the fake on a local listener until the returned server is closed.
func (a *API) Start() *httptest.Server {
	return httptest.NewServer(a)
}

// Seed appends records and returns their ids. Records without an id get one.
func (a *API) Seed(records ...foodapi.Record) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		a.records = append(a.records, rec)
		ids = append(ids, rec.ID)
	}
	return ids
}

// AddAccount registers an account that can log in.
func (a *API) AddAccount(acc Account) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts[acc.Email] = acc
}

// Record returns the stored record with id.
func (a *API) Record(id string) (foodapi.Record, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, rec := range a.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return foodapi.Record{}, false
}

// FailNext makes the next request to path answer with status.
func (a *API) FailNext(path string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[path] = status
}

// Calls returns the requests received so far.
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}

// CallsTo returns the requests received for path.
func (a *API) CallsTo(path string) []Call {
	var out []Call
	for _, c := range a.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (a *API) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{Method: r.Method, Path: r.URL.Path}
		if r.Method == http.MethodPost {
			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				jsonError(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			call.Body = body
			// Handlers read the decoded body from the request context via bodyFrom.
			r = r.WithContext(withBody(r.Context(), body))
		}

		a.mu.Lock()
		a.calls = append(a.calls, call)
		status, fail := a.failures[r.URL.Path]
		delete(a.failures, r.URL.Path)
		a.mu.Unlock()

		if fail {
			jsonError(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) availableFoods(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	out := make([]foodapi.Record, len(a.records))
	copy(out, a.records)
	a.mu.Unlock()
	jsonResponse(w, out)
}

func (a *API) acceptFood(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	id := stringField(body, "foodId")
	name := stringField(body, "userName")
	if id == "" || name == "" {
		jsonError(w, "foodId and userName are required", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	rec := a.find(id)
	if rec == nil {
		jsonError(w, "Food not found", http.StatusNotFound)
		return
	}
	if rec.Accepted || rec.Received {
		jsonError(w, "Food already accepted", http.StatusConflict)
		return
	}
	rec.Accepted = true
	rec.AcceptedBy = name
	jsonResponse(w, map[string]string{"message": "Food accepted"})
}

func (a *API) confirmReceived(w http.ResponseWriter, r *http.Request) {
	id := stringField(bodyFrom(r.Context()), "foodId")

	a.mu.Lock()
	defer a.mu.Unlock()
	rec := a.find(id)
	if rec == nil {
		jsonError(w, "Food not found", http.StatusNotFound)
		return
	}
	if !rec.Accepted || rec.Received {
		jsonError(w, "Food is not waiting for pickup", http.StatusConflict)
		return
	}
	rec.Received = true
	jsonResponse(w, map[string]string{"message": "Food received"})
}

func (a *API) addData(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FoodItem       string `json:"foodItem"`
		Availability   string `json:"availability"`
		ExpectedPeople int    `json:"expectedPeople"`
		Location       string `json:"location"`
		Contact        string `json:"contact"`
		EmailVal       string `json:"emailVal"`
	}
	if err := remarshal(bodyFrom(r.Context()), &req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FoodItem == "" || req.ExpectedPeople <= 0 {
		jsonError(w, "foodItem and expectedPeople are required", http.StatusBadRequest)
		return
	}

	id := a.Seed(foodapi.Record{
		FoodItem:       req.FoodItem,
		Availability:   foodapi.FlexString(req.Availability),
		ExpectedPeople: req.ExpectedPeople,
		Location:       req.Location,
		Contact:        req.Contact,
		EmailVal:       req.EmailVal,
	})[0]

	jsonStatus(w, http.StatusCreated, map[string]string{"message": "Food added", "_id": id})
}

func (a *API) signup(w http.ResponseWriter, r *http.Request) {
	var acc Account
	if err := remarshal(bodyFrom(r.Context()), &acc); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.accounts[acc.Email]; exists {
		jsonError(w, "An account with this email already exists", http.StatusConflict)
		return
	}
	a.accounts[acc.Email] = acc
	jsonStatus(w, http.StatusCreated, map[string]string{"message": "Account created"})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	email := stringField(bodyFrom(r.Context()), "email")

	a.mu.Lock()
	acc, ok := a.accounts[email]
	a.mu.Unlock()
	if !ok {
		jsonError(w, "User not found", http.StatusUnauthorized)
		return
	}
	jsonResponse(w, map[string]interface{}{
		"user": map[string]string{"name": acc.Name, "email": acc.Email, "userType": acc.UserType},
	})
}

// find returns the stored record with id. Callers hold a.mu.
func (a *API) find(id string) *foodapi.Record {
	for i := range a.records {
		if a.records[i].ID == id {
			return &a.records[i]
		}
	}
	return nil
}

// --- helpers ---

func jsonResponse(w http.ResponseWriter, data interface{}) {
	jsonStatus(w, http.StatusOK, data)
}

func jsonStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("foodapitest: error encoding JSON response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func stringField(body map[string]interface{}, key string) string {
	s, _ := body[key].(string)
	return s
}

func remarshal(body map[string]interface{}, dst interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
