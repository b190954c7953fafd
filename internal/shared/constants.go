package shared

import "time"

// HTTP Client Configuration
const (
	DefaultHTTPTimeout     = 120 * time.Second
	DefaultDialTimeout     = 2 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// Session Configuration
const (
	SessionCacheTTL      = 1 * time.Minute
	SessionCacheFillWait = 2 * time.Second
	DefaultSessionCookie = "session_token"
)

// Request Configuration
const (
	RequestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	RequestIDLength   = 28
	ExternalIDHeader  = "X-Request-Id"
)
