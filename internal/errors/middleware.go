package errors

import (
	"errors"

	"github.com/Behyna/wallet-service/internal/constants"
	"github.com/Behyna/wallet-service/internal/service"
	"github.com/gofiber/fiber/v2"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": "Could not process the request",
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	statusMap := map[string]int{
		constants.ErrCodeAccountNotFound:          fiber.StatusNotFound,
		constants.ErrCodeSameAccountTransfer:      fiber.StatusBadRequest,
		constants.ErrCodeNonPositiveAmount:        fiber.StatusBadRequest,
		constants.ErrCodeInsufficientBalance:      fiber.StatusBadRequest,
		constants.ErrCodeIdempotencyKeyExpired:    fiber.StatusBadRequest,
		constants.ErrCodeTransferPreviouslyFailed: fiber.StatusBadRequest,
		constants.ErrCodeValidationFailed:         fiber.StatusBadRequest,
		constants.ErrCodeTransferConflict:         fiber.StatusConflict,
		constants.ErrCodeOperationFailed:          fiber.StatusInternalServerError,
	}

	status, ok := statusMap[err.Code]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"code":    err.Code,
		"message": constants.GetErrorMessage(err.Code),
		"reason":  err.Error(),
	})
}
