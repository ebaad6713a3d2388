package v1

import (
	"time"

	"github.com/Behyna/wallet-service/internal/api/contract"
	"github.com/Behyna/wallet-service/internal/api/v1/middleware"
	"github.com/Behyna/wallet-service/internal/api/validator"
	"github.com/Behyna/wallet-service/internal/constants"
	"github.com/Behyna/wallet-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	logger          *zap.Logger
	transferService service.TransferService
	XValidator      validator.IXValidator
}

func NewHandler(logger *zap.Logger, transferService service.TransferService, XValidator validator.IXValidator) *Handler {
	return &Handler{
		logger:          logger,
		transferService: transferService,
		XValidator:      XValidator,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) EnsureAccount(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	account, err := h.transferService.EnsureAccount(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Error ensuring account", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	return c.JSON(contract.NewSuccess("account ready", account))
}

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	start := time.Now()
	userID := middleware.UserID(c)

	balance, err := h.transferService.GetBalance(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Error getting balance", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	h.logger.Info("Balance retrieved successfully",
		zap.String("user_id", userID),
		zap.Duration("duration", time.Since(start)),
	)

	return c.JSON(contract.NewSuccess("balance retrieved successfully", balance))
}

func (h *Handler) Transfer(c *fiber.Ctx) error {
	start := time.Now()
	userID := middleware.UserID(c)

	var handlerRequest TransferRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)

	if responseError.Code != "" {
		h.logger.Error("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	amount, err := decimal.NewFromString(handlerRequest.Amount)
	if err != nil {
		responseError.Code = constants.ErrCodeValidationFailed
		responseError.Message = constants.ErrMsgValidationFailed
		return c.Status(fiber.StatusUnprocessableEntity).JSON(responseError)
	}

	cmd := service.TransferCommand{
		UserID:         userID,
		ToAccountID:    handlerRequest.ToAccountID,
		Amount:         amount,
		IdempotencyKey: handlerRequest.IdempotencyKey,
		Description:    handlerRequest.Description,
	}

	result, err := h.transferService.Transfer(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	h.logger.Info("Transfer processed",
		zap.String("user_id", userID),
		zap.Int64("transaction_id", result.TransactionID),
		zap.Duration("duration", time.Since(start)),
	)

	return c.JSON(contract.NewSuccess("transfer completed", result))
}

func (h *Handler) ListHistory(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var handlerRequest HistoryRequest
	if err := c.QueryParser(&handlerRequest); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(contract.ResponseError{
			Code:    constants.ErrCodeValidationFailed,
			Message: constants.ErrMsgValidationFailed,
			Error:   err.Error(),
		})
	}

	if errs := h.XValidator.Validate(&handlerRequest); len(errs) > 0 && errs[0].Error {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(contract.ResponseError{
			Code:    constants.ErrCodeValidationFailed,
			Message: constants.ErrMsgValidationFailed,
		})
	}

	cmd := service.HistoryCommand{
		UserID:    userID,
		Page:      handlerRequest.Page,
		PageSize:  handlerRequest.PageSize,
		SortField: handlerRequest.SortField,
		SortDir:   handlerRequest.SortDir,
	}

	history, err := h.transferService.ListHistory(c.UserContext(), cmd)
	if err != nil {
		h.logger.Error("Error listing history", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	return c.JSON(contract.NewSuccess("transaction history retrieved", history))
}
