package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	method     jwt.SigningMethod
	lifetime   time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService. It fails when the signing
// key, algorithm, or lifetime configuration is absent, so a misconfigured
// process refuses to start instead of issuing unverifiable tokens.
func NewTokenService(signingKey []byte, algorithm string, lifetime time.Duration, logger Logger) (*TokenServiceImpl, error) {
	if logger == nil {
		logger = defLogger{}
	}

	if len(signingKey) == 0 {
		return nil, errors.New("token service requires a signing key", errors.CategoryInternal).
			WithTextCode("CONFIG_MISSING_KEY")
	}

	if lifetime <= 0 {
		return nil, errors.New("token service requires a positive token lifetime", errors.CategoryInternal).
			WithTextCode("CONFIG_MISSING_LIFETIME")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, errors.New(
			fmt.Sprintf("unknown signing algorithm: %q", algorithm),
			errors.CategoryInternal,
		).WithTextCode("CONFIG_BAD_ALGORITHM")
	}

	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New(
			fmt.Sprintf("signing algorithm %q is not in the HMAC family", algorithm),
			errors.CategoryInternal,
		).WithTextCode("CONFIG_BAD_ALGORITHM")
	}

	return &TokenServiceImpl{
		signingKey: signingKey,
		method:     method,
		lifetime:   lifetime,
		logger:     logger,
	}, nil
}

// Generate creates a signed session token carrying the user id and email.
func (ts *TokenServiceImpl) Generate(userID int64, email string) (string, error) {
	if userID == 0 || email == "" {
		return "", errors.New("user id and email are required to generate a token", errors.CategoryBadInput)
	}

	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.lifetime)),
		},
		UserID: userID,
		Email:  email,
	}

	ensureTokenID(&claims.RegisteredClaims)

	token := jwt.NewWithClaims(ts.method, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning its claims.
// Both signature and expiry are checked; empty or malformed tokens are
// never special-cased as valid.
func (ts *TokenServiceImpl) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode claims")
	return nil, ErrTokenMalformed
}

// Lifetime returns the configured token lifetime; the HTTP layer uses it
// to align the cookie max age with token expiry.
func (ts *TokenServiceImpl) Lifetime() time.Duration {
	return ts.lifetime
}
