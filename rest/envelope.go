package rest

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Envelope is the fixed response shape every endpoint returns.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   any    `json:"error"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Success writes a success envelope with the given HTTP status code.
func Success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, message string, data any) error {
	return Success(c, http.StatusOK, message, data)
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, message string, data any) error {
	return Success(c, http.StatusCreated, message, data)
}

// Fail writes an error envelope with the given HTTP status code.
func Fail(c *fiber.Ctx, status int, message string, detail any) error {
	return c.Status(status).JSON(Envelope{
		Status:  StatusError,
		Message: message,
		Error:   detail,
	})
}

// FailFromError maps a rich error to the envelope, falling back to a
// generic 500 so internals never leak past the boundary.
func FailFromError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		// framework errors carry meaningful codes (405, 413); keep
		// them instead of collapsing everything to 500
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < http.StatusInternalServerError {
			return Fail(c, fiberErr.Code, fiberErr.Message, nil)
		}
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected error occurred")
	}

	status := StatusCode(richErr)

	var detail any
	if richErr.TextCode != "" {
		detail = richErr.TextCode
	}

	message := richErr.Message
	if status >= http.StatusInternalServerError {
		message = "An unexpected error occurred"
		detail = nil
	}

	return Fail(c, status, message, detail)
}

// StatusCode resolves the HTTP status for a rich error, preferring an
// explicit code over the category mapping.
func StatusCode(err *errors.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	if err.Code >= http.StatusBadRequest {
		return err.Code
	}

	switch err.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth, errors.CategoryAuthz:
		return http.StatusUnauthorized
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusBadRequest
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
