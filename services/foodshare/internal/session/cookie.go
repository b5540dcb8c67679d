package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/jredh-dev/foodshare/services/foodshare/pkg/models"
)

// ErrInvalidToken is returned when a session cookie fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the serialized user record carried in the session cookie.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"userType"`
	jwt.RegisteredClaims
}

// CookieOptions configures a CookieStore.
type CookieOptions struct {
	Name   string // cookie name (default: "user")
	MaxAge int    // seconds; the session itself never expires
	Issuer string
	Secure bool
}

// CookieStore keeps the user record in an HS256-signed cookie.
type CookieStore struct {
	signingKey []byte
	opts       CookieOptions
	now        func() time.Time
}

// NewCookieStore creates a cookie store signing with secret.
func NewCookieStore(secret string, opts CookieOptions) *CookieStore {
	if opts.Name == "" {
		opts.Name = "user"
	}
	return &CookieStore{
		signingKey: []byte(secret),
		opts:       opts,
		now:        time.Now,
	}
}

// Load reads the viewer from the request. A missing, malformed or tampered
// cookie yields an anonymous viewer.
func (s *CookieStore) Load(r *http.Request) Viewer {
	cookie, err := r.Cookie(s.opts.Name)
	if err != nil || cookie.Value == "" {
		return Anonymous()
	}
	u, err := s.Decode(cookie.Value)
	if err != nil {
		return Anonymous()
	}
	return SignedIn(u)
}

// Save writes u as the current session.
func (s *CookieStore) Save(w http.ResponseWriter, u models.User) error {
	token, err := s.Encode(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   s.opts.MaxAge,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Encode signs the user record.
func (s *CookieStore) Encode(u models.User) (string, error) {
	claims := Claims{
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			Issuer:   s.opts.Issuer,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies a signed user record.
func (s *CookieStore) Decode(tokenString string) (models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.User{}, ErrInvalidToken
	}
	if s.opts.Issuer != "" && claims.Issuer != s.opts.Issuer {
		return models.User{}, fmt.Errorf("%w: issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Name == "" {
		return models.User{}, fmt.Errorf("%w: missing name", ErrInvalidToken)
	}

	return models.User{
		Name:  claims.Name,
		Email: claims.Email,
		Role:  models.Role(claims.Role),
	}, nil
}
