package dto

import (
	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/service"
)

// CreateTransactionRequest payload for new transactions.
type CreateTransactionRequest struct {
	UserID      int64   `json:"user_id"`
	CategoryID  int64   `json:"category_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// UpdateTransactionRequest payload for transaction changes.
type UpdateTransactionRequest struct {
	CategoryID  *int64   `json:"category_id"`
	Type        *string  `json:"type"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
}

// TransactionResponse is the public transaction representation.
type TransactionResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	UserName     string  `json:"user_name"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	Description  string  `json:"description"`
}

// HistoryResponse is one page of a user's transaction history.
type HistoryResponse struct {
	Content       []TransactionResponse `json:"content"`
	Page          int                   `json:"page"`
	Size          int                   `json:"size"`
	TotalElements int                   `json:"total_elements"`
	TotalPages    int                   `json:"total_pages"`
	First         bool                  `json:"first"`
	Last          bool                  `json:"last"`
}

const dateLayout = "2006-01-02"

// NewTransactionResponse maps a domain transaction.
func NewTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		UserID:       tx.UserID,
		UserName:     tx.UserName,
		CategoryID:   tx.CategoryID,
		CategoryName: tx.CategoryName,
		Type:         string(tx.Type),
		Amount:       tx.Amount,
		Date:         tx.Date.Format(dateLayout),
		Description:  tx.Description,
	}
}

// NewTransactionResponses maps a slice of domain transactions.
func NewTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, NewTransactionResponse(&txs[i]))
	}
	return out
}

// NewHistoryResponse maps a history page envelope.
func NewHistoryResponse(page *service.HistoryPage) HistoryResponse {
	return HistoryResponse{
		Content:       NewTransactionResponses(page.Content),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.First,
		Last:          page.Last,
	}
}
