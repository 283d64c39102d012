package domain

import (
	"fmt"
	"strings"
	"time"
)

// UserRole is the access tier of an account.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// UserPlan is the subscription tier of an account. Informational only; it
// carries no access-control meaning.
type UserPlan string

const (
	PlanFree        UserPlan = "FREE"
	PlanPro         UserPlan = "PRO"
	PlanMasterSaver UserPlan = "MASTER_SAVER"
)

// User is the domain model for account holders.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Plan         UserPlan
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParseUserRole maps a case-insensitive role name to a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("invalid role %q: must be USER or ADMIN", value)
	}
}

// ParseUserPlan maps a case-insensitive plan name to a UserPlan.
func ParseUserPlan(value string) (UserPlan, error) {
	switch UserPlan(strings.ToUpper(strings.TrimSpace(value))) {
	case PlanFree:
		return PlanFree, nil
	case PlanPro:
		return PlanPro, nil
	case PlanMasterSaver:
		return PlanMasterSaver, nil
	default:
		return "", fmt.Errorf("invalid plan %q: must be FREE, PRO or MASTER_SAVER", value)
	}
}
