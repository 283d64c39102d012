package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/events"
	"github.com/spec-kit/finance-tracker/internal/repository"
	apperrors "github.com/spec-kit/finance-tracker/pkg/util"
)

// TransactionCreateInput describes transaction creation payload.
type TransactionCreateInput struct {
	UserID      int64
	CategoryID  int64
	Type        domain.TransactionType
	Amount      float64
	Date        time.Time
	Description string
}

// TransactionUpdateInput carries optional transaction fields.
type TransactionUpdateInput struct {
	CategoryID  *int64
	Type        *domain.TransactionType
	Amount      *float64
	Date        *time.Time
	Description *string
}

// TransactionService coordinates transaction workflows.
type TransactionService struct {
	transactions repository.TransactionRepository
	users        repository.UserRepository
	categories   repository.CategoryRepository
	dispatcher   events.Dispatcher
}

// TransactionDependencies bundles collaborators for the service.
type TransactionDependencies struct {
	TransactionRepo repository.TransactionRepository
	UserRepo        repository.UserRepository
	CategoryRepo    repository.CategoryRepository
	Dispatcher      events.Dispatcher
}

// NewTransactionService constructs the service.
func NewTransactionService(deps TransactionDependencies) *TransactionService {
	return &TransactionService{
		transactions: deps.TransactionRepo,
		users:        deps.UserRepo,
		categories:   deps.CategoryRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Create records a transaction after validating that the category accepts
// the transaction type.
func (s *TransactionService) Create(ctx context.Context, input TransactionCreateInput) (*domain.Transaction, error) {
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.Accepts(input.Type) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("category %q does not accept %s transactions", category.Name, input.Type), nil)
	}

	tx := &domain.Transaction{
		UserID:      input.UserID,
		CategoryID:  input.CategoryID,
		Type:        input.Type,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
		Active:      true,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	tx.CategoryName = category.Name

	s.publish(ctx, events.Event{
		Type:   events.EventTransactionCreated,
		UserID: tx.UserID,
		Payload: events.TransactionCreatedPayload{
			TransactionID: tx.ID,
			CategoryID:    tx.CategoryID,
			Type:          tx.Type,
			Amount:        tx.Amount,
		},
	})
	return tx, nil
}

// GetByID fetches one transaction.
func (s *TransactionService) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

// ListByUser returns a user's active transactions.
func (s *TransactionService) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	return s.transactions.ListByUser(ctx, userID)
}

// ListByUserAndDateRange returns active transactions inside the inclusive
// date window.
func (s *TransactionService) ListByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Transaction, error) {
	return s.transactions.ListByUserAndDateRange(ctx, userID, start, end)
}

// Update applies optional field changes, re-validating the category/type
// pairing whenever either side changes.
func (s *TransactionService) Update(ctx context.Context, id int64, input TransactionUpdateInput) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if !category.Accepts(tx.Type) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("category %q does not accept %s transactions", category.Name, tx.Type), nil)
		}
		tx.CategoryID = category.ID
		tx.CategoryName = category.Name
	}

	if input.Type != nil {
		category, err := s.categories.GetByID(ctx, tx.CategoryID)
		if err != nil {
			return nil, err
		}
		if !category.Accepts(*input.Type) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("category %q does not accept %s transactions", category.Name, *input.Type), nil)
		}
		tx.Type = *input.Type
	}

	if input.Amount != nil {
		tx.Amount = *input.Amount
	}
	if input.Date != nil {
		tx.Date = *input.Date
	}
	if input.Description != nil {
		tx.Description = *input.Description
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Deactivate soft-deletes the transaction.
func (s *TransactionService) Deactivate(ctx context.Context, id int64) error {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	tx.Active = false
	return s.transactions.Update(ctx, tx)
}

// History fetches a user's transaction window and builds one page of the
// filtered, newest-first history.
func (s *TransactionService) History(ctx context.Context, userID int64, start, end time.Time, filter HistoryFilter) (*HistoryPage, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	window, err := s.transactions.ListByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	page := BuildHistoryPage(filter, window)
	return &page, nil
}

func (s *TransactionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
