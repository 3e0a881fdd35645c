package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/apperror"
)

// IdentitySession is a signed-in account at the identity provider.
type IdentitySession interface {
	// CurrentIdentity returns the account's email, false when there is none.
	CurrentIdentity(ctx context.Context) (string, bool)
	SignOut(ctx context.Context) error
}

// AccessGuard admits only allow-listed accounts and manages the allow-list.
type AccessGuard struct {
	userRepo    repository.AuthorizedUserRepository
	masterEmail string
	logger      *slog.Logger
}

// NewAccessGuard creates the guard. masterEmail is the undeletable owner account.
func NewAccessGuard(userRepo repository.AuthorizedUserRepository, masterEmail string, logger *slog.Logger) *AccessGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessGuard{
		userRepo:    userRepo,
		masterEmail: normalizeEmail(masterEmail),
		logger:      logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsureMaster seeds the master account into the allow-list.
func (g *AccessGuard) EnsureMaster(ctx context.Context) error {
	if g.masterEmail == "" {
		g.logger.Warn("MASTER_EMAIL is not set; only existing allow-list entries can sign in")
		return nil
	}
	existing, err := g.userRepo.GetByEmail(ctx, g.masterEmail)
	if err != nil {
		return fmt.Errorf("look up master account: %w", err)
	}
	if existing != nil {
		return nil
	}
	g.logger.Info("seeding master account", "email", g.masterEmail)
	return g.userRepo.Create(ctx, &entity.AuthorizedUser{
		Email:   g.masterEmail,
		Role:    enum.RoleMaster,
		AddedBy: "system",
	})
}

// Admit checks the session's account against the allow-list. Accounts that
// are not on it are signed out at the provider before the denial is returned.
func (g *AccessGuard) Admit(ctx context.Context, session IdentitySession) (*entity.AuthorizedUser, error) {
	email, ok := session.CurrentIdentity(ctx)
	if ok {
		user, err := g.Check(ctx, email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, apperror.ErrAccessDenied) {
			return nil, err
		}
	}

	if err := session.SignOut(ctx); err != nil {
		g.logger.Warn("sign-out after denied sign-in failed", "email", email, "error", err)
	}
	g.logger.Info("sign-in denied", "email", email)
	return nil, apperror.ErrAccessDenied
}

// Check looks email up in the allow-list. It runs on every authenticated
// request so removal takes effect immediately.
func (g *AccessGuard) Check(ctx context.Context, email string) (*entity.AuthorizedUser, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperror.ErrAccessDenied
	}
	user, err := g.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check allow-list: %w", err)
	}
	if user == nil {
		if email == g.masterEmail {
			return &entity.AuthorizedUser{Email: email, Role: enum.RoleMaster, AddedBy: "system"}, nil
		}
		return nil, apperror.ErrAccessDenied
	}
	return user, nil
}

// ListUsers returns the allow-list ordered by email.
func (g *AccessGuard) ListUsers(ctx context.Context) ([]entity.AuthorizedUser, error) {
	users, err := g.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authorized users: %w", err)
	}
	if users == nil {
		users = []entity.AuthorizedUser{}
	}
	return users, nil
}

func requireAdministrator(actor *entity.AuthorizedUser) error {
	if actor == nil || !actor.Role.CanManageAccess() {
		return apperror.NewAppError(apperror.ErrForbidden.Code, "Only the owner or an admin can manage access")
	}
	return nil
}

// AddUser puts email on the allow-list with role.
func (g *AccessGuard) AddUser(ctx context.Context, actor *entity.AuthorizedUser, email string, role enum.Role) (*entity.AuthorizedUser, error) {
	if err := requireAdministrator(actor); err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	var errs []apperror.FieldError
	if fe := validateEmail("email", email); fe != nil {
		errs = append(errs, *fe)
	}
	if role == "" {
		role = enum.RoleStaff
	}
	if !role.IsValid() || role == enum.RoleMaster {
		errs = append(errs, apperror.FieldError{Field: "role", Message: "must be admin or staff"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	existing, err := g.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up authorized user: %w", err)
	}
	if existing != nil || email == g.masterEmail {
		return nil, apperror.NewConflictError("This email already has access")
	}

	user := &entity.AuthorizedUser{Email: email, Role: role, AddedBy: actor.Email}
	if err := g.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("add authorized user: %w", err)
	}
	g.logger.Info("access granted", "email", email, "role", role, "by", actor.Email)
	return user, nil
}

// RemoveUser takes email off the allow-list. The master account can never be
// removed, whoever asks.
func (g *AccessGuard) RemoveUser(ctx context.Context, actor *entity.AuthorizedUser, email string) error {
	email = normalizeEmail(email)
	if email != "" && email == g.masterEmail {
		return apperror.ErrMasterProtected
	}
	if err := requireAdministrator(actor); err != nil {
		return err
	}

	existing, err := g.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("look up authorized user: %w", err)
	}
	if existing == nil {
		return apperror.NewNotFoundError("Authorized user")
	}
	if existing.Role == enum.RoleMaster {
		return apperror.ErrMasterProtected
	}

	if err := g.userRepo.Delete(ctx, email); err != nil {
		return fmt.Errorf("remove authorized user: %w", err)
	}
	g.logger.Info("access revoked", "email", email, "by", actor.Email)
	return nil
}
