package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func txRecord(id int64, date string, txType domain.TransactionType, categoryID int64) domain.Transaction {
	return domain.Transaction{
		ID:         id,
		UserID:     1,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     10,
		Date:       day(date),
		Active:     true,
	}
}

func typeFilter(t domain.TransactionType) *domain.TransactionType {
	return &t
}

func TestBuildHistoryPageFiltersAndOrders(t *testing.T) {
	input := []domain.Transaction{
		txRecord(1, "2025-11-05", domain.TransactionExpense, 1),
		txRecord(2, "2025-11-05", domain.TransactionIncome, 1),
		txRecord(3, "2025-11-01", domain.TransactionExpense, 2),
	}

	page := BuildHistoryPage(HistoryFilter{Type: typeFilter(domain.TransactionExpense), Page: 0, Size: 20}, input)

	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(1), page.Content[0].ID, "same-day entries order by id descending")
	assert.Equal(t, int64(3), page.Content[1].ID)
	assert.Equal(t, 2, page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)
}

func TestBuildHistoryPageCategoryFilter(t *testing.T) {
	input := []domain.Transaction{
		txRecord(1, "2025-11-05", domain.TransactionExpense, 1),
		txRecord(2, "2025-11-04", domain.TransactionExpense, 2),
		txRecord(3, "2025-11-03", domain.TransactionIncome, 2),
	}
	categoryID := int64(2)

	page := BuildHistoryPage(HistoryFilter{CategoryID: &categoryID}, input)

	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(2), page.Content[0].ID)
	assert.Equal(t, int64(3), page.Content[1].ID)
}

func TestBuildHistoryPageCombinedFilters(t *testing.T) {
	input := []domain.Transaction{
		txRecord(1, "2025-11-05", domain.TransactionExpense, 1),
		txRecord(2, "2025-11-04", domain.TransactionExpense, 2),
		txRecord(3, "2025-11-03", domain.TransactionIncome, 2),
	}
	categoryID := int64(2)

	page := BuildHistoryPage(HistoryFilter{
		Type:       typeFilter(domain.TransactionExpense),
		CategoryID: &categoryID,
	}, input)

	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(2), page.Content[0].ID)
}

func TestBuildHistoryPagePagination(t *testing.T) {
	input := make([]domain.Transaction, 0, 25)
	for i := 1; i <= 25; i++ {
		input = append(input, txRecord(int64(i), "2025-11-10", domain.TransactionExpense, 1))
	}

	first := BuildHistoryPage(HistoryFilter{Page: 0, Size: 20}, input)
	assert.Len(t, first.Content, 20)
	assert.Equal(t, 25, first.TotalElements)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.First)
	assert.False(t, first.Last)

	second := BuildHistoryPage(HistoryFilter{Page: 1, Size: 20}, input)
	assert.Len(t, second.Content, 5)
	assert.False(t, second.First)
	assert.True(t, second.Last)

	// A page past the end is not an error: empty content, true totals.
	third := BuildHistoryPage(HistoryFilter{Page: 2, Size: 20}, input)
	assert.Empty(t, third.Content)
	assert.NotNil(t, third.Content)
	assert.Equal(t, 25, third.TotalElements)
	assert.Equal(t, 2, third.TotalPages)
	assert.True(t, third.Last)
}

func TestBuildHistoryPageEmptyInput(t *testing.T) {
	page := BuildHistoryPage(HistoryFilter{}, nil)

	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.TotalElements)
	assert.Equal(t, 0, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)
}

func TestBuildHistoryPageNormalizesPageAndSize(t *testing.T) {
	input := []domain.Transaction{txRecord(1, "2025-11-05", domain.TransactionExpense, 1)}

	page := BuildHistoryPage(HistoryFilter{Page: -3, Size: 0}, input)

	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 20, page.Size)
	assert.Len(t, page.Content, 1)
}

func TestBuildHistoryPageIsPure(t *testing.T) {
	input := []domain.Transaction{
		txRecord(1, "2025-11-05", domain.TransactionExpense, 1),
		txRecord(2, "2025-11-06", domain.TransactionIncome, 2),
		txRecord(3, "2025-11-04", domain.TransactionExpense, 1),
	}
	filter := HistoryFilter{Page: 0, Size: 2}

	first := BuildHistoryPage(filter, input)
	second := BuildHistoryPage(filter, input)

	assert.Equal(t, first, second)
}
