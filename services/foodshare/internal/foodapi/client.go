// Package foodapi is the client for the remote food-donation API.
//
// It is the single source of truth for endpoint paths and wire field names.
// All paths are resolved against one configurable base URL.
package foodapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// Endpoint paths, relative to the base URL.
const (
	PathAvailableFoods  = "/available-foods"
	PathAcceptFood      = "/accept-food"
	PathConfirmReceived = "/confirm-received"
	PathAddData         = "/add-data"
	PathSignup          = "/api/signup"
	PathLogin           = "/api/login"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client talks to the remote API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New returns a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestIDKey struct{}

// WithRequestID returns a context whose outgoing calls carry id as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// AvailableFoods fetches every listing the API knows about. Received listings
// are dropped; ordering is whatever the API returned.
func (c *Client) AvailableFoods(ctx context.Context) ([]models.Listing, error) {
	const op = "available foods"

	body, err := c.do(ctx, op, http.MethodGet, PathAvailableFoods, nil)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("%s decode: %w", op, err)
	}

	listings := make([]models.Listing, 0, len(records))
	for _, rec := range records {
		l := rec.Listing()
		if l.Status == models.StatusReceived {
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}

type acceptRequest struct {
	FoodID     string `json:"foodId"`
	DonorEmail string `json:"donorEmail,omitempty"`
	UserName   string `json:"userName"`
	UserEmail  string `json:"userEmail"`
	UserType   string `json:"userType,omitempty"`
}

// AcceptFood records u as the claimant of the listing.
func (c *Client) AcceptFood(ctx context.Context, foodID, donorEmail string, u models.User) error {
	_, err := c.do(ctx, "accept food", http.MethodPost, PathAcceptFood, acceptRequest{
		FoodID:     foodID,
		DonorEmail: donorEmail,
		UserName:   u.Name,
		UserEmail:  u.Email,
		UserType:   string(u.Role),
	})
	return err
}

// ConfirmReceived marks the listing as picked up.
func (c *Client) ConfirmReceived(ctx context.Context, foodID string) error {
	_, err := c.do(ctx, "confirm received", http.MethodPost, PathConfirmReceived, struct {
		FoodID string `json:"foodId"`
	}{FoodID: foodID})
	return err
}

type addDataRequest struct {
	FoodItem       string `json:"foodItem"`
	Availability   string `json:"availability"`
	ExpectedPeople int    `json:"expectedPeople"`
	Location       string `json:"location"`
	Contact        string `json:"contact"`
	EmailVal       string `json:"emailVal"`
}

// AddFood submits a new donation.
func (c *Client) AddFood(ctx context.Context, n models.NewListing) error {
	_, err := c.do(ctx, "add food", http.MethodPost, PathAddData, addDataRequest{
		FoodItem:       n.Item,
		Availability:   n.Availability,
		ExpectedPeople: n.ExpectedPeople,
		Location:       n.Location,
		Contact:        n.Contact,
		EmailVal:       n.Email,
	})
	return err
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
	UserType string `json:"userType"`
}

// Signup registers a new account. It does not create a session.
func (c *Client) Signup(ctx context.Context, reg models.Registration) error {
	_, err := c.do(ctx, "signup", http.MethodPost, PathSignup, signupRequest{
		Name:     reg.Name,
		Email:    reg.Email,
		Location: reg.Location,
		UserType: string(reg.Role),
	})
	return err
}

// Login exchanges an email for the stored user record. The response may be
// the bare record or wrapped as {"user": {...}}.
func (c *Client) Login(ctx context.Context, email string) (models.User, error) {
	const op = "login"

	body, err := c.do(ctx, op, http.MethodPost, PathLogin, struct {
		Email string `json:"email"`
	}{Email: email})
	if err != nil {
		return models.User{}, err
	}

	var resp struct {
		models.User
		Wrapped *models.User `json:"user"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.User{}, fmt.Errorf("%s decode: %w", op, err)
	}
	u := resp.User
	if resp.Wrapped != nil {
		u = *resp.Wrapped
	}
	if u.Name == "" {
		return models.User{}, fmt.Errorf("%s: response carries no user", op)
	}
	return u, nil
}

// do issues one request and returns the response body on 2xx.
func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s encode: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	} else {
		req.Header.Set("X-Request-ID", uuid.New().String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read: %w", op, err)
	}
	return data, nil
}

// errorMessage extracts {"message": ...} (or {"error": ...}) from a failure body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
