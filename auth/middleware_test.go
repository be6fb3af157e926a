package auth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bookverse/backend/auth"
)

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var payload map[string]any
	assert.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func TestRequireAuth(t *testing.T) {
	tokens := newTestTokenService(t, time.Hour)

	users := new(MockUsers)
	users.On("GetByID", mock.Anything, int64(7)).Return(&auth.User{
		ID:       7,
		Email:    "reader@example.com",
		IsActive: true,
	}, nil)
	users.On("GetByID", mock.Anything, int64(999)).Return(nil, auth.ErrUserNotFound)

	auther := auth.NewAuthenticator(users, tokens)

	handlerCalled := false
	app := fiber.New()
	app.Get("/private", auth.RequireAuth(auther, tokens), func(c *fiber.Ctx) error {
		handlerCalled = true
		user, ok := auth.CurrentUser(c)
		assert.True(t, ok)
		assert.Equal(t, int64(7), user.ID)
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("No token", func(t *testing.T) {
		handlerCalled = false
		resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.False(t, handlerCalled)

		payload := decodeEnvelope(t, resp)
		assert.Equal(t, "error", payload["status"])
		assert.Equal(t, "No token provided", payload["message"])
	})

	t.Run("Invalid token", func(t *testing.T) {
		handlerCalled = false
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.False(t, handlerCalled)

		payload := decodeEnvelope(t, resp)
		assert.Equal(t, "Invalid or expired token", payload["message"])
	})

	t.Run("Expired token", func(t *testing.T) {
		handlerCalled = false
		short := newTestTokenService(t, time.Millisecond)
		token, err := short.Generate(7, "reader@example.com")
		assert.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.False(t, handlerCalled)
	})

	t.Run("Token for deleted user", func(t *testing.T) {
		handlerCalled = false
		token, err := tokens.Generate(999, "ghost@example.com")
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.False(t, handlerCalled)

		payload := decodeEnvelope(t, resp)
		assert.Equal(t, "Invalid user", payload["message"])
	})

	t.Run("Valid token via cookie", func(t *testing.T) {
		handlerCalled = false
		token, err := tokens.Generate(7, "reader@example.com")
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/private", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.True(t, handlerCalled)
	})
}

func TestRequireToken(t *testing.T) {
	tokens := newTestTokenService(t, time.Hour)

	app := fiber.New()
	app.Get("/private", auth.RequireToken(tokens), func(c *fiber.Ctx) error {
		claims, ok := auth.CurrentClaims(c)
		assert.True(t, ok)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "reader@example.com", claims.Email)
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("No token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid token", func(t *testing.T) {
		token, err := tokens.Generate(7, "reader@example.com")
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
