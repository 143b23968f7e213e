package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/expense"
)

type expenseResponse struct {
	ID          uuid.UUID  `json:"id"`
	Amount      int64      `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toResponse(e *expense.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if !e.Date.IsZero() {
		resp.Date = &e.Date
	}

	return resp
}

func toResponseList(expenses []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}
