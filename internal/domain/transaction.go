package domain

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// Transaction is a single income or expense entry. Each belongs to exactly
// one user and one category. Soft deleted via Active.
type Transaction struct {
	ID          int64
	UserID      int64
	CategoryID  int64
	Type        TransactionType
	Amount      float64
	Date        time.Time
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Denormalized display names filled in by read queries.
	UserName     string
	CategoryName string
}

// ParseTransactionType maps a case-insensitive type name to a
// TransactionType. Unknown names are a caller error, never silently ignored.
func ParseTransactionType(value string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(value))) {
	case TransactionIncome:
		return TransactionIncome, nil
	case TransactionExpense:
		return TransactionExpense, nil
	default:
		return "", fmt.Errorf("invalid transaction type %q: must be INCOME or EXPENSE", value)
	}
}
