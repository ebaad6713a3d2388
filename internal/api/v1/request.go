package v1

type TransferRequest struct {
	ToAccountID    int64  `json:"to_account_id" validate:"required,min=1"`
	Amount         string `json:"amount" validate:"required,amount"`
	IdempotencyKey string `json:"idempotency_key" validate:"required,max=64"`
	Description    string `json:"description" validate:"max=255"`
}

type HistoryRequest struct {
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
	SortField string `query:"sort_field"`
	SortDir   string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
}
