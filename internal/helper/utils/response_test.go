package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResponseServiceError(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("email", "This field is required.")

	cases := []struct {
		err    error
		status int
		body   string
	}{
		{ve, fiber.StatusBadRequest, ""},
		{domain.ErrExpiredToken, fiber.StatusBadRequest, "token has expired"},
		{domain.ErrInvalidDueDate, fiber.StatusBadRequest, "due date cannot be earlier than creation time"},
		{domain.ErrNotEligible, fiber.StatusForbidden, "you do not have permission to perform this action"},
		{domain.ErrUnknownInvitee, fiber.StatusNotFound, "no account registered for this email"},
		{domain.ErrInvitationNotFound, fiber.StatusNotFound, "invitation not found"},
		{fmt.Errorf("wrapped: %w", domain.ErrDuplicateInvitation), fiber.StatusConflict, "wrapped: a pending invitation already exists for this user"},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "invalid email or password"},
		{domain.ErrDeliveryFailed, fiber.StatusInternalServerError, domain.ErrDeliveryFailed.Error()},
		{errors.New("db is on fire"), fiber.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return ResponseServiceError(c, zap.NewNop(), tc.err)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())

		raw, _ := io.ReadAll(resp.Body)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		if tc.body != "" {
			assert.Equal(t, tc.body, body["error"])
		} else {
			assert.Contains(t, body, "errors")
		}
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@example.com", MaskEmail("alice@example.com"))
	assert.Equal(t, "***", MaskEmail("broken"))
}
