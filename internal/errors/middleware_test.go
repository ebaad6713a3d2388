package errors_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Behyna/wallet-service/internal/constants"
	apperrors "github.com/Behyna/wallet-service/internal/errors"
	"github.com/Behyna/wallet-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppFailingWith(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler()})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func TestErrorHandlerMapsServiceCodes(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{constants.ErrCodeAccountNotFound, fiber.StatusNotFound},
		{constants.ErrCodeSameAccountTransfer, fiber.StatusBadRequest},
		{constants.ErrCodeNonPositiveAmount, fiber.StatusBadRequest},
		{constants.ErrCodeInsufficientBalance, fiber.StatusBadRequest},
		{constants.ErrCodeIdempotencyKeyExpired, fiber.StatusBadRequest},
		{constants.ErrCodeTransferPreviouslyFailed, fiber.StatusBadRequest},
		{constants.ErrCodeValidationFailed, fiber.StatusBadRequest},
		{constants.ErrCodeTransferConflict, fiber.StatusConflict},
		{constants.ErrCodeOperationFailed, fiber.StatusInternalServerError},
		{"SOMETHING_NEW", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			app := newAppFailingWith(service.NewServiceError(tt.code, errors.New("boom")))

			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	app := newAppFailingWith(errors.New("pq: connection reset"))

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body["message"], "pq:")
}
