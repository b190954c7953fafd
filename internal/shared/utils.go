// Package shared
package shared

import (
	"fmt"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
)

func SafeEnv(env string) (string, error) {
	res, present := os.LookupEnv(env)
	if !present {
		return "", fmt.Errorf("missing environment variable %s", env)
	}
	return res, nil
}

func GetEnv(env, fallback string) string {
	if value, ok := os.LookupEnv(env); ok {
		return value
	}
	return fallback
}

// ExtractBearer returns the token of an `Authorization: Bearer <token>` header.
func ExtractBearer(c echo.Context) (string, error) {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return "", ErrMissingAuth
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", ErrInvalidFormat
	}
	return parts[1], nil
}

// ExtractSessionToken reads the session token from cookieName, falling back to
// a bearer Authorization header.
func ExtractSessionToken(c echo.Context, cookieName string) (string, error) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return ExtractBearer(c)
}

// BearerHeader formats a credential for an outbound Authorization header.
func BearerHeader(token string) string {
	return "Bearer " + token
}
