package rest_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookverse/backend/rest"
)

func doRequest(t *testing.T, handler fiber.Handler) (*http.Response, map[string]any) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))

	return resp, payload
}

func TestSuccessEnvelope(t *testing.T) {
	resp, payload := doRequest(t, func(c *fiber.Ctx) error {
		return rest.Created(c, "User registered successfully", map[string]any{"id": 1})
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, "User registered successfully", payload["message"])
	assert.NotNil(t, payload["data"])
	assert.Nil(t, payload["error"])
}

func TestFailEnvelope(t *testing.T) {
	resp, payload := doRequest(t, func(c *fiber.Ctx) error {
		return rest.Fail(c, http.StatusBadRequest, "Invalid data", "missing email")
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error", payload["status"])
	assert.Equal(t, "Invalid data", payload["message"])
	assert.Equal(t, "missing email", payload["error"])
	assert.Nil(t, payload["data"])
}

func TestFailFromError(t *testing.T) {
	t.Run("rich error keeps category status", func(t *testing.T) {
		resp, payload := doRequest(t, func(c *fiber.Ctx) error {
			return rest.FailFromError(c, errors.New("invalid email or password", errors.CategoryAuth))
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid email or password", payload["message"])
	})

	t.Run("plain error becomes generic 500", func(t *testing.T) {
		resp, payload := doRequest(t, func(c *fiber.Ctx) error {
			return rest.FailFromError(c, io.ErrUnexpectedEOF)
		})

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "An unexpected error occurred", payload["message"])
		assert.Nil(t, payload["error"])
	})

	t.Run("framework error keeps its code", func(t *testing.T) {
		resp, payload := doRequest(t, func(c *fiber.Ctx) error {
			return rest.FailFromError(c, fiber.ErrRequestEntityTooLarge)
		})

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, "error", payload["status"])
		assert.Equal(t, fiber.ErrRequestEntityTooLarge.Message, payload["message"])
	})

	t.Run("framework 500 stays generic", func(t *testing.T) {
		resp, payload := doRequest(t, func(c *fiber.Ctx) error {
			return rest.FailFromError(c, fiber.NewError(http.StatusInternalServerError, "dsn user=admin"))
		})

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "An unexpected error occurred", payload["message"])
	})

	t.Run("internal message never leaks", func(t *testing.T) {
		resp, payload := doRequest(t, func(c *fiber.Ctx) error {
			return rest.FailFromError(c, errors.New("dsn user=admin password=hunter2", errors.CategoryInternal))
		})

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, payload["message"], "hunter2")
	})
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.Error
		want int
	}{
		{"validation", errors.New("bad", errors.CategoryValidation), http.StatusBadRequest},
		{"conflict maps to 400", errors.New("dup", errors.CategoryConflict), http.StatusBadRequest},
		{"auth", errors.New("no", errors.CategoryAuth), http.StatusUnauthorized},
		{"not found", errors.New("gone", errors.CategoryNotFound), http.StatusNotFound},
		{"internal", errors.New("boom", errors.CategoryInternal), http.StatusInternalServerError},
		{"explicit code wins", errors.New("gone", errors.CategoryInternal).WithCode(errors.CodeNotFound), http.StatusNotFound},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rest.StatusCode(tt.err))
		})
	}
}
