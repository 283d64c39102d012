package domain

import (
	"fmt"
	"strings"
)

// CategoryKind restricts which transaction types a category accepts.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "INCOME"
	CategoryKindExpense CategoryKind = "EXPENSE"
	CategoryKindBoth    CategoryKind = "BOTH"
)

// Category groups transactions. Names are unique case-insensitively.
type Category struct {
	ID          int64
	Name        string
	Description string
	Kind        CategoryKind
	Active      bool
}

// Accepts reports whether the category can hold a transaction of the given
// type.
func (c Category) Accepts(t TransactionType) bool {
	if c.Kind == CategoryKindBoth {
		return true
	}
	return string(c.Kind) == string(t)
}

// ParseCategoryKind maps a case-insensitive kind name to a CategoryKind.
func ParseCategoryKind(value string) (CategoryKind, error) {
	switch CategoryKind(strings.ToUpper(strings.TrimSpace(value))) {
	case CategoryKindIncome:
		return CategoryKindIncome, nil
	case CategoryKindExpense:
		return CategoryKindExpense, nil
	case CategoryKindBoth:
		return CategoryKindBoth, nil
	default:
		return "", fmt.Errorf("invalid kind %q: must be INCOME, EXPENSE or BOTH", value)
	}
}
