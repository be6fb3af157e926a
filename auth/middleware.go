package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookverse/backend/rest"
)

const (
	localUserKey   = "auth:user"
	localClaimsKey = "auth:claims"
)

// RequireAuth gates a route behind a valid session. It extracts the
// token, validates signature and expiry, resolves the user, and stashes
// both claims and user for the wrapped handler. Each rejection point
// answers 401 with a constant message; nothing about the failure mode
// beyond the message is leaked.
func RequireAuth(auther Authenticator, tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := TokenFromRequest(c)
		if raw == "" {
			return rest.FailFromError(c, ErrNoToken)
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			return rest.FailFromError(c, err)
		}

		user, err := auther.UserFromClaims(c.UserContext(), claims)
		if err != nil {
			return rest.FailFromError(c, err)
		}

		c.Locals(localClaimsKey, claims)
		c.Locals(localUserKey, user)
		c.SetUserContext(WithContext(WithClaimsContext(c.UserContext(), claims), user))

		return c.Next()
	}
}

// RequireToken gates a route behind a valid token without resolving the
// user. The book service runs it; it has no users table, so signature
// and expiry are the whole check.
func RequireToken(tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := TokenFromRequest(c)
		if raw == "" {
			return rest.FailFromError(c, ErrNoToken)
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			return rest.FailFromError(c, err)
		}

		c.Locals(localClaimsKey, claims)
		c.SetUserContext(WithClaimsContext(c.UserContext(), claims))

		return c.Next()
	}
}

// CurrentUser returns the user the gate resolved for this request.
func CurrentUser(c *fiber.Ctx) (*User, bool) {
	user, ok := c.Locals(localUserKey).(*User)
	return user, ok
}

// CurrentClaims returns the validated token claims for this request.
func CurrentClaims(c *fiber.Ctx) (*TokenClaims, bool) {
	claims, ok := c.Locals(localClaimsKey).(*TokenClaims)
	return claims, ok
}
