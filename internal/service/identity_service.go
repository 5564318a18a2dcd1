package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/config"
	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/internal/events"
	"github.com/skillforge/backend/internal/repository"
	"github.com/skillforge/backend/internal/validator"
	"github.com/skillforge/backend/pkg/util"
)

// IdentityService orchestrates registration, login, token authentication and
// role management. It is the only entry point other subsystems use to reach
// the credential store, the password hasher and the token manager.
type IdentityService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	guard      *auth.Guard
	validate   *validator.Validator
	dispatcher events.Dispatcher
	bcryptCost int
}

// IdentityDependencies bundles collaborator requirements.
type IdentityDependencies struct {
	UserRepo   repository.UserRepository
	Guard      *auth.Guard
	Validator  *validator.Validator
	Dispatcher events.Dispatcher
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.AuthConfig, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		users:      deps.UserRepo,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		guard:      deps.Guard,
		validate:   deps.Validator,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput describes a registration request. Role is optional and only
// honored for Admin actors.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string
}

// Register validates input, hashes the password and creates the account
// atomically, then issues a session token. A duplicate email surfaces as a
// conflict error straight from the store.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput, actor *domain.User) (*domain.User, string, time.Time, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, "", time.Time{}, err
	}

	role := domain.RoleStudent
	if input.Role != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok {
			return nil, "", time.Time{}, util.NewValidationError("unknown role", map[string]any{"role": input.Role})
		}
		if parsed != domain.RoleStudent {
			if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceUser, auth.ActionChangeRole) {
				return nil, "", time.Time{}, util.NewForbidden("only admins may assign roles at registration")
			}
		}
		role = parsed
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, util.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, util.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:  events.EventUserRegistered,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
		Payload: events.UserRegisteredPayload{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
	})
	return user, token, expiresAt, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password fail with the same authentication error so accounts cannot
// be enumerated; the unknown-email path still pays for a hash comparison.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		auth.CompareDummy(password)
		return nil, "", time.Time{}, util.NewAuthenticationError()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewAuthenticationError()
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, util.NewInternalError(err)
	}
	return user, token, expiresAt, nil
}

// Authenticate validates a token and re-resolves its subject to a live user
// record, so a user deleted after issuance fails lookup rather than silently
// passing with stale claims.
func (s *IdentityService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, claims.Subject)
}

// ChangeRole updates a user's role after an authorization check. A denied
// check performs no store mutation.
func (s *IdentityService) ChangeRole(ctx context.Context, actor *domain.User, targetID, newRole string) (*domain.User, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceUser, auth.ActionChangeRole) {
		return nil, util.NewForbidden("role changes require admin access")
	}

	role, ok := domain.ParseRole(newRole)
	if !ok {
		return nil, util.NewValidationError("unknown role", map[string]any{"role": newRole})
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:  events.EventUserRoleChanged,
		Actor: events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.UserRoleChangedPayload{
			UserID:  updated.ID,
			OldRole: target.Role,
			NewRole: updated.Role,
		},
	})
	return updated, nil
}

// GetUser returns a profile readable by its owner or by an admin.
func (s *IdentityService) GetUser(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if actor == nil {
		return nil, util.NewForbidden("authentication required")
	}
	if actor.ID != id && !s.guard.Authorize(actor.Role, auth.ResourceUser, auth.ActionRead) {
		return nil, util.NewForbidden("cannot read other users")
	}
	return s.users.GetByID(ctx, id)
}

// ListUsers returns every account; admin only.
func (s *IdentityService) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceUser, auth.ActionRead) {
		return nil, util.NewForbidden("user listing requires admin access")
	}
	return s.users.List(ctx)
}

// CountUsers returns the total account count; admin only.
func (s *IdentityService) CountUsers(ctx context.Context, actor *domain.User) (int64, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceUser, auth.ActionRead) {
		return 0, util.NewForbidden("user counting requires admin access")
	}
	return s.users.Count(ctx)
}

// DeleteAllUsers purges every account; admin only. Outstanding tokens for
// purged users die at the Authenticate re-resolution step.
func (s *IdentityService) DeleteAllUsers(ctx context.Context, actor *domain.User) (int64, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceUser, auth.ActionPurge) {
		return 0, util.NewForbidden("user purge requires admin access")
	}

	deleted, err := s.users.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUsersPurged,
		Actor:   events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.UsersPurgedPayload{Deleted: deleted},
	})
	return deleted, nil
}

// TokenManager exposes the underlying token manager.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *IdentityService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
