package events

import (
	"time"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventUserDeactivated    EventType = "user_deactivated"
	EventUserPlanChanged    EventType = "user_plan_changed"
	EventUserRoleChanged    EventType = "user_role_changed"
	EventTransactionCreated EventType = "transaction_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string          `json:"email"`
	Plan  domain.UserPlan `json:"plan"`
}

// UserPlanChangedPayload payload.
type UserPlanChangedPayload struct {
	OldPlan domain.UserPlan `json:"old_plan"`
	NewPlan domain.UserPlan `json:"new_plan"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	OldRole domain.UserRole `json:"old_role"`
	NewRole domain.UserRole `json:"new_role"`
}

// TransactionCreatedPayload payload.
type TransactionCreatedPayload struct {
	TransactionID int64                  `json:"transaction_id"`
	CategoryID    int64                  `json:"category_id"`
	Type          domain.TransactionType `json:"type"`
	Amount        float64                `json:"amount"`
}
