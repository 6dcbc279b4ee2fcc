// Package users implements account registration, login and session
// handling on top of an account Repository.
package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/password"
	"github.com/dmitrijs2005/authkeeper/internal/server/session"
	"github.com/google/uuid"
)

// Recorder receives the outcome of every auth operation.
type Recorder interface {
	AuthEvent(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) AuthEvent(string, string) {}

// RegisterInput is what a new account is created from. Shape (non-empty
// name, email syntax, password length) is checked before it gets here.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Service orchestrates the account store, the hasher, the token issuer and
// the session cookie.
type Service struct {
	repo    Repository
	hasher  *password.Hasher
	issuer  *auth.Issuer
	carrier *session.Carrier
	logger  logging.Logger
	events  Recorder
}

func NewService(repo Repository, hasher *password.Hasher, issuer *auth.Issuer, carrier *session.Carrier, logger logging.Logger, events Recorder) *Service {
	if events == nil {
		events = nopRecorder{}
	}
	return &Service{
		repo:    repo,
		hasher:  hasher,
		issuer:  issuer,
		carrier: carrier,
		logger:  logger.With("module", "users"),
		events:  events,
	}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account, starts a session for it on w and returns the
// public view of the new user. A taken email yields *ConflictError.
func (s *Service) Register(ctx context.Context, w http.ResponseWriter, in RegisterInput) (*PublicUser, error) {
	user, err := s.create(ctx, in)
	if err != nil {
		s.events.AuthEvent("register", outcome(err))
		return nil, err
	}

	if err := s.startSession(w, user); err != nil {
		s.events.AuthEvent("register", "error")
		return nil, err
	}

	s.events.AuthEvent("register", "ok")
	s.logger.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return user.Public(), nil
}

// Provision creates an account without starting a session. It is meant for
// operator tooling, which is the only way to create admin accounts.
func (s *Service) Provision(ctx context.Context, in RegisterInput) (*PublicUser, error) {
	user, err := s.create(ctx, in)
	if err != nil {
		s.events.AuthEvent("provision", outcome(err))
		return nil, err
	}

	s.events.AuthEvent("provision", "ok")
	s.logger.Info(ctx, "user provisioned", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return user.Public(), nil
}

// Login checks the credentials and starts a session on w. Unknown email and
// wrong password both return common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, email, plaintext string) (*PublicUser, error) {
	email = NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.events.AuthEvent("login", "error")
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		if _, err := s.hasher.Verify(ctx, plaintext, s.hasher.DummyHash()); err != nil {
			s.events.AuthEvent("login", "error")
			return nil, fmt.Errorf("verify password: %w", err)
		}
		return nil, s.rejectLogin(ctx, email)
	}

	ok, err := s.hasher.Verify(ctx, plaintext, user.PasswordHash)
	if err != nil {
		s.events.AuthEvent("login", "error")
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, s.rejectLogin(ctx, email)
	}

	if err := s.startSession(w, user); err != nil {
		s.events.AuthEvent("login", "error")
		return nil, err
	}

	s.events.AuthEvent("login", "ok")
	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return user.Public(), nil
}

// Logout clears the session cookie. It always succeeds; the token itself
// stays valid until it expires.
func (s *Service) Logout(ctx context.Context, w http.ResponseWriter) {
	s.carrier.Clear(w)
	s.events.AuthEvent("logout", "ok")
}

// Authenticate returns the verified claims of the session on r. No cookie
// yields common.ErrUnauthenticated; a bad token yields *auth.TokenError.
func (s *Service) Authenticate(r *http.Request) (*auth.Claims, error) {
	token, ok := s.carrier.Extract(r)
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	return s.issuer.Verify(token)
}

// Me returns the public view of the user with the given id.
func (s *Service) Me(ctx context.Context, id string) (*PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// The account behind a still-valid token is gone.
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return user.Public(), nil
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]*PublicUser, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*PublicUser, 0, len(all))
	for _, u := range all {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *Service) create(ctx context.Context, in RegisterInput) (*User, error) {
	email := NormalizeEmail(in.Email)

	role := in.Role
	if role == "" {
		role = common.RoleUser
	}
	if !common.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Warn(ctx, "email already registered", "email", email)
		return nil, &ConflictError{Email: email}
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Insert(ctx, &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		// A concurrent registration won the unique index.
		if errors.Is(err, common.ErrConflict) {
			s.logger.Warn(ctx, "email already registered", "email", email)
			return nil, &ConflictError{Email: email}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (s *Service) startSession(w http.ResponseWriter, user *User) error {
	token, _, err := s.issuer.Issue(auth.Identity{Subject: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	s.carrier.Attach(w, token)
	return nil
}

func (s *Service) rejectLogin(ctx context.Context, email string) error {
	s.events.AuthEvent("login", "invalid_credentials")
	s.logger.Warn(ctx, "login rejected", "email", email)
	return common.ErrInvalidCredentials
}

func outcome(err error) string {
	switch {
	case errors.Is(err, common.ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidRole):
		return "invalid"
	default:
		return "error"
	}
}
