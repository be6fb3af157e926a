package auth

import (
	"context"
	"fmt"
)

// Logger is the narrow logging surface auth components depend on: a
// message plus alternating key/value pairs, the shape glog loggers
// accept. The binaries satisfy it with glog; tests use mocks.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	Generate(userID int64, email string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// Authenticator verifies credentials and resolves sessions back to users.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*User, string, error)
	Register(ctx context.Context, input RegisterInput) (*User, string, error)
	UserFromClaims(ctx context.Context, claims *TokenClaims) (*User, error)
}

// PasswordAuthenticator hashes and verifies passwords.
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) { logLine("[ERR] AUTH", msg, args) }
func (d defLogger) Warn(msg string, args ...any)  { logLine("[WRN] AUTH", msg, args) }
func (d defLogger) Info(msg string, args ...any)  { logLine("[INF] AUTH", msg, args) }
func (d defLogger) Debug(msg string, args ...any) { logLine("[DBG] AUTH", msg, args) }

func logLine(prefix, msg string, args []any) {
	out := make([]any, 0, len(args)+1)
	out = append(out, prefix+" "+msg)
	out = append(out, args...)
	fmt.Println(out...)
}
