package auth

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"
)

// Auther verifies credentials and registers users. It owns the token
// service so every success path issues a session token.
type Auther struct {
	users  Users
	tokens TokenService
	logger Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator backed by the given user
// directory and token service.
func NewAuthenticator(users Users, tokens TokenService) *Auther {
	return &Auther{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// Login checks the email/password pair against the stored user. Unknown
// email and wrong password fail with the same generic error; a disabled
// account with correct credentials fails with a distinct reason.
func (s *Auther) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("Login user lookup failed", "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to verify credentials")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("Login password comparison failed", "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to verify credentials")
	}

	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Login token generation failed", "error", err)
		return nil, "", err
	}

	return user, token, nil
}

// RegisterInput carries a registration request past validation.
type RegisterInput struct {
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsStaff     bool   `json:"-"`
	IsSuperuser bool   `json:"-"`
}

// Validate will run validation rules
func (r RegisterInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.By(notBlank), validation.Length(1, 225)),
		validation.Field(&r.LastName, validation.Required, validation.By(notBlank), validation.Length(1, 225)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
	)
}

// notBlank rejects values that trim down to nothing; Required alone lets
// whitespace-only input through, which would be stored as the empty string.
func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// Register validates the input, hashes the password, stores the user and
// issues a session token.
func (s *Auther) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	if err := input.Validate(); err != nil {
		return nil, "", errors.Wrap(err, errors.CategoryValidation, "Invalid data")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, "", errors.Wrap(richErr, errors.CategoryValidation, "invalid password provided")
		}
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      input.IsStaff,
		IsSuperuser:  input.IsSuperuser,
	}

	if user, err = s.users.Register(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Register token generation failed", "error", err)
		return nil, "", err
	}

	return user, token, nil
}

// UserFromClaims resolves the user referenced by validated token claims.
func (s *Auther) UserFromClaims(ctx context.Context, claims *TokenClaims) (*User, error) {
	if claims == nil {
		return nil, ErrInvalidUser
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidUser
		}
		return nil, err
	}

	return user, nil
}
