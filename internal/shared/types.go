package shared

import "time"

// User is the authenticated caller. APIKey is forwarded upstream as a bearer
// credential and is never logged or serialized back to clients.
type User struct {
	ID     uint64 `json:"id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	APIKey string `json:"api_key"`
}

type Session struct {
	User    *User     `json:"user"`
	Expires time.Time `json:"expires"`
}

// Valid reports whether s can be used to authorize an upstream call at now.
// A zero Expires never expires.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.User == nil || s.User.APIKey == "" {
		return false
	}
	if !s.Expires.IsZero() && !now.Before(s.Expires) {
		return false
	}
	return true
}
