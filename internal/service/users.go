package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/pkg/logging"
)

type UserRepo interface {
	CreateUserIfNotExists(ctx context.Context, u *models.User) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetUserRole(ctx context.Context, id, role string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserService struct {
	Repo UserRepo
}

// Signup creates the user on the first call for an email. Later calls return
// the stored user with created=false.
func (s *UserService) Signup(ctx context.Context, name, email string) (*models.User, bool, error) {
	l := logging.FromContext(ctx).With("svc", "users.signup")

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, fmt.Errorf("%w: email required", ErrValidation)
	}
	// only a bare address is accepted; "Bob <b@x.io>" would otherwise become the key
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, false, fmt.Errorf("%w: invalid email", ErrValidation)
	}

	user := &models.User{Name: name, Email: email, Role: models.RoleGuest}
	created, err := s.Repo.CreateUserIfNotExists(ctx, user)
	if err != nil {
		l.Error("signup_error", "status", 500, "error", err)
		return nil, false, err
	}
	return user, created, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// RoleByEmail reads the role from storage on every call.
func (s *UserService) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", notFound(err, "user")
	}
	return user.Role, nil
}

func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.RoleByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return role == models.RoleAdmin, nil
}

// Promote is idempotent: promoting an admin again is a no-op.
func (s *UserService) Promote(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.SetUserRole(ctx, id, models.RoleAdmin)
	if err != nil {
		return nil, notFound(err, "user")
	}
	logging.FromContext(ctx).Info("user_promoted", "svc", "users.promote", "user_id", id)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return notFound(s.Repo.DeleteUser(ctx, id), "user")
}
