package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the session cookie the services read and write.
const CookieName = "access_token"

// AuthScheme is the expected Authorization header scheme.
const AuthScheme = "Bearer"

// TokenFromRequest extracts the session token from the request. The
// cookie takes precedence; the Authorization header is only consulted
// when no cookie is present. Returns the empty string when no token is
// carried anywhere; absence is not an error here, callers decide.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(CookieName); token != "" {
		return token
	}
	return tokenFromHeader(c)
}

// TokenFromCookie reads the session cookie only, ignoring the header.
// The validate endpoint uses it.
func TokenFromCookie(c *fiber.Ctx) string {
	return c.Cookies(CookieName)
}

func tokenFromHeader(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	prefix := AuthScheme + " "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}
