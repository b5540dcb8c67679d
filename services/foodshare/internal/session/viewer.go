// Package session holds the identity of the current viewer.
//
// A Viewer is either anonymous or carries the user record written at login.
// Stores persist that record between requests (CookieStore) or between
// program runs (FileStore). Nothing here is an authorization boundary: the
// remote API decides what a user may actually do.
package session

import "github.com/jredh-dev/foodshare/services/foodshare/pkg/models"

// Viewer is the current viewer: logged out, or signed in with a user record.
// The zero value is an anonymous viewer.
type Viewer struct {
	user     models.User
	loggedIn bool
}

// Anonymous returns a logged-out viewer.
func Anonymous() Viewer {
	return Viewer{}
}

// SignedIn returns a viewer holding u.
func SignedIn(u models.User) Viewer {
	return Viewer{user: u, loggedIn: true}
}

// Session returns the stored user and whether the viewer is signed in.
func (v Viewer) Session() (models.User, bool) {
	return v.user, v.loggedIn
}

// LoggedIn reports whether the viewer has a session.
func (v Viewer) LoggedIn() bool {
	return v.loggedIn
}

// Name returns the display name, or "" when logged out.
func (v Viewer) Name() string {
	return v.user.Name
}

// Role returns the account type, or "" when logged out.
func (v Viewer) Role() models.Role {
	return v.user.Role
}

// IsDonor reports whether the viewer is a signed-in donor.
func (v Viewer) IsDonor() bool {
	return v.loggedIn && v.user.Role.IsDonor()
}

// IsRecipient reports whether the viewer is signed in with a non-donor role.
func (v Viewer) IsRecipient() bool {
	return v.loggedIn && !v.user.Role.IsDonor()
}
