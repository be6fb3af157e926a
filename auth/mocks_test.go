package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bookverse/backend/auth"
)

// MockUsers implements auth.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) Register(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Find(ctx context.Context, filter auth.UserFilter, limit, offset int) ([]auth.User, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	var users []auth.User
	if u := args.Get(0); u != nil {
		users = u.([]auth.User)
	}
	return users, args.Int(1), args.Error(2)
}

func (m *MockUsers) Update(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockTokens implements auth.TokenService
type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Generate(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *MockTokens) Validate(token string) (*auth.TokenClaims, error) {
	args := m.Called(token)
	if c := args.Get(0); c != nil {
		return c.(*auth.TokenClaims), args.Error(1)
	}
	return nil, args.Error(1)
}
