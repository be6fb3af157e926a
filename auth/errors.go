package auth

import (
	"github.com/goliatone/go-errors"
)

// Authentication failures are deliberately generic. The gate and the
// credential verifier never reveal whether a token, an email, or a
// password was the part that failed.
var (
	// ErrNoToken is returned when a request carries no token anywhere.
	ErrNoToken = errors.New("No token provided", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode("NO_TOKEN")

	// ErrTokenExpired is returned for tokens past their exp claim.
	ErrTokenExpired = errors.New("Invalid or expired token", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode("TOKEN_EXPIRED")

	// ErrTokenMalformed covers bad signatures, tampered payloads, and
	// anything else that does not parse as one of our tokens.
	ErrTokenMalformed = errors.New("Invalid or expired token", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode("TOKEN_MALFORMED")

	// ErrInvalidUser is returned when a valid token references a user
	// that no longer exists.
	ErrInvalidUser = errors.New("Invalid user", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode("INVALID_USER")

	// ErrInvalidCredentials is shared by the unknown-email and
	// wrong-password paths so responses cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("Invalid email or password", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode("INVALID_CREDENTIALS")

	// ErrAccountDisabled is returned for inactive accounts with correct
	// credentials.
	ErrAccountDisabled = errors.New("Account is disabled", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode("ACCOUNT_DISABLED")
)

var (
	// ErrDuplicateEmail is returned when registration hits an existing
	// email address.
	ErrDuplicateEmail = errors.New("A user with this email already exists", errors.CategoryConflict).
				WithTextCode("DUPLICATE_EMAIL")

	// ErrUserNotFound is returned by directory lookups with no match.
	ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
			WithTextCode("USER_NOT_FOUND")

	// ErrMismatchedHashAndPassword is the internal bcrypt mismatch; the
	// credential verifier converts it to ErrInvalidCredentials before it
	// can reach a response.
	ErrMismatchedHashAndPassword = errors.New("mismatched password and hash", errors.CategoryAuth)

	// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
	ErrNoEmptyString = errors.New("value must not be an empty string", errors.CategoryValidation)
)
