package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/events"
	"github.com/spec-kit/finance-tracker/internal/persistence"
	"github.com/spec-kit/finance-tracker/internal/repository"
	apperrors "github.com/spec-kit/finance-tracker/pkg/util"
)

const userStatsCacheKey = "user_statistics"

// UserStatistics is the admin aggregate view over all accounts.
type UserStatistics struct {
	TotalUsers       int64 `json:"total_users"`
	TotalActive      int64 `json:"total_active"`
	TotalInactive    int64 `json:"total_inactive"`
	TotalFree        int64 `json:"total_free"`
	TotalPro         int64 `json:"total_pro"`
	TotalMasterSaver int64 `json:"total_master_saver"`
}

// UserUpdateInput carries optional profile fields.
type UserUpdateInput struct {
	Name  *string
	Email *string
}

// UserService coordinates account management workflows.
type UserService struct {
	users      repository.UserRepository
	statsCache *persistence.ViewCache[UserStatistics]
	dispatcher events.Dispatcher
}

// NewUserService constructs the service. The stats cache may be nil.
func NewUserService(users repository.UserRepository, statsCache *persistence.ViewCache[UserStatistics], dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, statsCache: statsCache, dispatcher: dispatcher}
}

// GetByID fetches one account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Update applies optional name/email changes, enforcing email uniqueness.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		newEmail := strings.TrimSpace(*input.Email)
		if !strings.EqualFold(newEmail, user.Email) {
			existing, err := s.users.GetByEmail(ctx, newEmail)
			if err == nil && existing.ID != id {
				return nil, apperrors.NewConflict("email already in use", nil)
			}
			if err != nil && err != pgx.ErrNoRows {
				return nil, err
			}
			user.Email = newEmail
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes the account.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Active = false
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Type: events.EventUserDeactivated, UserID: user.ID})
	s.invalidateStats(ctx)
	return nil
}

// ChangePlan switches the subscription tier.
func (s *UserService) ChangePlan(ctx context.Context, id int64, plan domain.UserPlan) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldPlan := user.Plan
	user.Plan = plan
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventUserPlanChanged,
		UserID:  user.ID,
		Payload: events.UserPlanChangedPayload{OldPlan: oldPlan, NewPlan: plan},
	})
	s.invalidateStats(ctx)
	return user, nil
}

// ChangeRole switches the access tier.
func (s *UserService) ChangeRole(ctx context.Context, id int64, role domain.UserRole) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldRole := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventUserRoleChanged,
		UserID:  user.ID,
		Payload: events.UserRoleChangedPayload{OldRole: oldRole, NewRole: role},
	})
	return user, nil
}

// Statistics aggregates account counts, served through a short-lived cache
// so repeated admin dashboard hits don't fan out into six count queries.
func (s *UserService) Statistics(ctx context.Context) (*UserStatistics, error) {
	if cached, ok := s.statsCache.Get(ctx, userStatsCacheKey); ok {
		return cached, nil
	}

	stats := &UserStatistics{}
	var err error
	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalActive, err = s.users.CountByActive(ctx, true); err != nil {
		return nil, err
	}
	if stats.TotalInactive, err = s.users.CountByActive(ctx, false); err != nil {
		return nil, err
	}
	if stats.TotalFree, err = s.users.CountByPlan(ctx, domain.PlanFree); err != nil {
		return nil, err
	}
	if stats.TotalPro, err = s.users.CountByPlan(ctx, domain.PlanPro); err != nil {
		return nil, err
	}
	if stats.TotalMasterSaver, err = s.users.CountByPlan(ctx, domain.PlanMasterSaver); err != nil {
		return nil, err
	}

	s.statsCache.Set(ctx, userStatsCacheKey, stats)
	return stats, nil
}

func (s *UserService) invalidateStats(ctx context.Context) {
	s.statsCache.Delete(ctx, userStatsCacheKey)
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
