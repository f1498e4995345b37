package app

import (
	"context"
	"strings"

	"propmatch/internal/common"
	"propmatch/internal/domain/user"
)

type UserService struct {
	users user.Repository
}

func NewUserService(users user.Repository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, actor Actor) ([]user.User, error) {
	if actor.Role != user.RoleAdministrator {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	return s.users.List(ctx)
}

// Get returns a user record. Callers can always read themselves;
// administrators and managers can read anyone.
func (s *UserService) Get(ctx context.Context, actor Actor, id common.UUID) (*user.User, error) {
	if id != actor.UserID && !actor.Role.Privileged() {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	return s.users.GetByID(ctx, id)
}

type UserUpdate struct {
	Name          *string
	PersonalEmail *string
	Active        *bool
}

// Update edits mutable account fields. The role is immutable after
// registration; deactivation is the soft end of an account's life.
func (s *UserService) Update(ctx context.Context, actor Actor, id common.UUID, input UserUpdate) (*user.User, error) {
	if actor.Role != user.RoleAdministrator && id != actor.UserID {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, common.NewValidationError("invalid user", map[string]string{"name": "name cannot be empty"})
		}
		account.Name = strings.TrimSpace(*input.Name)
	}
	if input.PersonalEmail != nil {
		account.PersonalEmail = strings.ToLower(strings.TrimSpace(*input.PersonalEmail))
	}
	if input.Active != nil {
		if actor.Role != user.RoleAdministrator {
			return nil, common.NewError(common.CodeForbidden, "only administrators change account state", nil)
		}
		account.Active = *input.Active
	}
	return s.users.Update(ctx, *account)
}

func (s *UserService) Delete(ctx context.Context, actor Actor, id common.UUID) error {
	if actor.Role != user.RoleAdministrator {
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
