package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeAccountNotFound          = "ACCOUNT_NOT_FOUND"
	ErrCodeSameAccountTransfer      = "SAME_ACCOUNT_TRANSFER"
	ErrCodeNonPositiveAmount        = "NON_POSITIVE_AMOUNT"
	ErrCodeInsufficientBalance      = "INSUFFICIENT_BALANCE"
	ErrCodeIdempotencyKeyExpired    = "IDEMPOTENCY_KEY_EXPIRED"
	ErrCodeTransferPreviouslyFailed = "TRANSFER_PREVIOUSLY_FAILED"
	ErrCodeTransferConflict         = "TRANSFER_CONFLICT"
	ErrCodeOperationFailed          = "OPERATION_FAILED"
	ErrCodeValidationFailed         = "VALIDATION_FAILED"
	ErrCodeUnauthorized             = "UNAUTHORIZED"
)

const (
	ErrMsgAccountNotFound          = "account not found"
	ErrMsgSameAccountTransfer      = "cannot transfer to the same account"
	ErrMsgNonPositiveAmount        = "transfer amount must be greater than zero"
	ErrMsgInsufficientBalance      = "insufficient balance"
	ErrMsgIdempotencyKeyExpired    = "idempotency key has expired"
	ErrMsgTransferPreviouslyFailed = "a previous transfer with this idempotency key failed"
	ErrMsgTransferConflict         = "transfer conflicted with a concurrent operation, retry with the same idempotency key"
	ErrMsgOperationFailed          = "operation failed"
	ErrMsgValidationFailed         = "validation failed"
	ErrMsgUnauthorized             = "caller identity is missing"
)

var errorMessages = map[string]string{
	ErrCodeAccountNotFound:          ErrMsgAccountNotFound,
	ErrCodeSameAccountTransfer:      ErrMsgSameAccountTransfer,
	ErrCodeNonPositiveAmount:        ErrMsgNonPositiveAmount,
	ErrCodeInsufficientBalance:      ErrMsgInsufficientBalance,
	ErrCodeIdempotencyKeyExpired:    ErrMsgIdempotencyKeyExpired,
	ErrCodeTransferPreviouslyFailed: ErrMsgTransferPreviouslyFailed,
	ErrCodeTransferConflict:         ErrMsgTransferConflict,
	ErrCodeOperationFailed:          ErrMsgOperationFailed,
	ErrCodeValidationFailed:         ErrMsgValidationFailed,
	ErrCodeUnauthorized:             ErrMsgUnauthorized,
}

func GetErrorMessage(code string) string {
	msg, exists := errorMessages[code]
	if !exists {
		return ""
	}
	return msg
}
