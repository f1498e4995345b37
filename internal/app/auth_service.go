package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"propmatch/internal/common"
	"propmatch/internal/domain/user"
	"propmatch/internal/security"
)

type AuthService struct {
	users     user.Repository
	jwt       *security.JWTProvider
	logger    *slog.Logger
	accessTTL time.Duration
}

func NewAuthService(users user.Repository, jwt *security.JWTProvider, logger *slog.Logger, accessTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwt: jwt, logger: logger, accessTTL: accessTTL}
}

type RegisterInput struct {
	Name               string
	InstitutionalEmail string
	PersonalEmail      string
	Password           string
	Role               user.Role
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

// Register creates an account. Self-service registration is limited to the
// student and company roles; administrators create manager accounts through
// the user admin endpoints.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	email := strings.ToLower(strings.TrimSpace(input.InstitutionalEmail))
	if email == "" {
		fields["institutional_email"] = "institutional_email is required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	role := user.Role(strings.ToLower(strings.TrimSpace(string(input.Role))))
	if role != user.RoleStudent && role != user.RoleCompany {
		fields["role"] = "role must be student or company"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "institutional email already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Name:               strings.TrimSpace(input.Name),
		InstitutionalEmail: email,
		PersonalEmail:      strings.ToLower(strings.TrimSpace(input.PersonalEmail)),
		PasswordHash:       hash,
		Role:               role,
		Active:             true,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", created.ID.String(), "role", string(created.Role))
	return created, nil
}

// Login accepts the institutional or the personal email. Deactivated
// accounts cannot sign in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, common.NewValidationError("invalid login", map[string]string{"email": "email and password are required"})
	}
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	if !account.Active {
		return nil, common.NewError(common.CodeForbidden, "account is deactivated", nil)
	}
	token, expiresAt, err := s.jwt.Generate(account.ID, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: *account}, nil
}
