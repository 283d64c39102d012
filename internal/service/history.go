package service

import (
	"sort"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

const defaultHistoryPageSize = 20

// HistoryFilter describes the optional predicates and page request applied
// to a user's transaction window. The date range and user are applied by
// the caller when fetching the input set.
type HistoryFilter struct {
	Type       *domain.TransactionType
	CategoryID *int64
	Page       int
	Size       int
}

// HistoryPage is one slice of the filtered, sorted history plus pagination
// metadata. Recomputed on every call, never cached.
type HistoryPage struct {
	Content       []domain.Transaction
	Page          int
	Size          int
	TotalElements int
	TotalPages    int
	First         bool
	Last          bool
}

// BuildHistoryPage filters, orders and slices an already-fetched set of
// transactions. It is a pure function of its inputs: all inputs, including
// empty sets and out-of-range pages, produce a well-formed envelope. A page
// past the end yields empty content while TotalElements and TotalPages
// still report the true totals, so callers can tell "no more results" from
// an invalid request.
func BuildHistoryPage(filter HistoryFilter, transactions []domain.Transaction) HistoryPage {
	page := filter.Page
	if page < 0 {
		page = 0
	}
	size := filter.Size
	if size <= 0 {
		size = defaultHistoryPageSize
	}

	filtered := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.CategoryID != nil && tx.CategoryID != *filter.CategoryID {
			continue
		}
		filtered = append(filtered, tx)
	}

	// Newest first; same-day entries tie-break on id descending so the
	// ordering stays deterministic.
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].Date.Equal(filtered[j].Date) {
			return filtered[i].Date.After(filtered[j].Date)
		}
		return filtered[i].ID > filtered[j].ID
	})

	totalElements := len(filtered)
	totalPages := 0
	if totalElements > 0 {
		totalPages = (totalElements + size - 1) / size
	}

	from := page * size
	to := from + size
	if to > totalElements {
		to = totalElements
	}

	content := []domain.Transaction{}
	if from < totalElements {
		content = filtered[from:to]
	}

	return HistoryPage{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          totalPages == 0 || page >= totalPages-1,
	}
}
