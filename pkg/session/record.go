// Package session persists the admin's client-side session: access token,
// token expiry, account identity and the logged-in flag.
package session

import "time"

// Record is the persisted session document. Field names mirror the
// storage slots the web dashboard used so both clients read the same shape.
type Record struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenExpiry int64  `json:"token_expiry,omitempty"` // Unix milliseconds
	AdminEmail  string `json:"admin_email,omitempty"`
	IsLoggedIn  bool   `json:"is_logged_in,omitempty"`
}

// Expiry returns the recorded expiry and whether one is present.
func (r Record) Expiry() (time.Time, bool) {
	if r.TokenExpiry <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(r.TokenExpiry), true
}

// Empty returns true if no slot is set.
func (r Record) Empty() bool {
	return r == Record{}
}

// ExpiredAt returns true if no expiry is recorded or t is past it.
func (r Record) ExpiredAt(t time.Time) bool {
	exp, ok := r.Expiry()
	if !ok {
		return true
	}
	return t.After(exp)
}

// AuthenticatedAt returns true only when the logged-in flag is backed by
// a token and an unexpired expiry. A flag without a token is not a session.
func (r Record) AuthenticatedAt(t time.Time) bool {
	return r.IsLoggedIn && r.AccessToken != "" && !r.ExpiredAt(t)
}
