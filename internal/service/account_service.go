package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/brokerz/brokerz-auth/internal/domain"
	"github.com/brokerz/brokerz-auth/internal/jwt"
	pw "github.com/brokerz/brokerz-auth/internal/password"
	"github.com/brokerz/brokerz-auth/internal/repository"
)

const minPasswordLength = 6

// AccountService encapsulates signup, login, and identity lookup flows.
type AccountService struct {
	users  repository.UserRepository
	tokens *jwt.Generator
	logger *zap.Logger
	tracer trace.Tracer
}

// NewAccountService wires dependencies.
func NewAccountService(users repository.UserRepository, tokens *jwt.Generator, logger *zap.Logger) *AccountService {
	return &AccountService{
		users:  users,
		tokens: tokens,
		logger: logger,
		tracer: otel.Tracer("github.com/brokerz/brokerz-auth/internal/service"),
	}
}

// Signup registers a new account and returns a fresh token. Validation is
// ordered and short-circuits on the first failure.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*AuthResponse, error) {
	ctx, span := s.startSpan(ctx, "AccountService.Signup")
	defer span.End()

	if in.FirstName == "" || in.LastName == "" || in.Email == "" ||
		in.Password == "" || in.ConfirmPassword == "" || in.Portal == "" {
		return nil, errSignupFieldsRequired
	}

	portal, ok := domain.ParsePortal(in.Portal)
	if !ok {
		return nil, errInvalidPortal
	}

	if in.Password != in.ConfirmPassword {
		return nil, errPasswordMismatch
	}

	if len(in.Password) < minPasswordLength {
		return nil, errPasswordTooShort
	}

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := normalizeEmail(in.Email)
	if firstName == "" || lastName == "" || email == "" {
		return nil, errEmptyFields
	}

	hash, err := pw.Hash(in.Password)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Portal:       portal,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateCredential) {
			return nil, errEmailExists
		}
		span.RecordError(err)
		return nil, fmt.Errorf("create account: %w", err)
	}

	// Re-read the stored row so the response reflects persisted values.
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load created account: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("account created",
		zap.Int64("user_id", user.ID),
		zap.String("portal", user.Portal.String()),
	)

	return &AuthResponse{
		Success: true,
		Message: "Account created.",
		Token:   token,
		User:    viewModel(user),
	}, nil
}

// Login authenticates an (email, portal, password) triple and returns a
// fresh token.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	ctx, span := s.startSpan(ctx, "AccountService.Login")
	defer span.End()

	if in.Email == "" || in.Password == "" || in.Portal == "" {
		return nil, errLoginFieldsRequired
	}

	portal, ok := domain.ParsePortal(in.Portal)
	if !ok {
		return nil, errInvalidPortal
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email), portal)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, errInvalidCredentials
		}
		span.RecordError(err)
		return nil, fmt.Errorf("load account: %w", err)
	}

	if !pw.Verify(in.Password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("login succeeded",
		zap.Int64("user_id", user.ID),
		zap.String("portal", user.Portal.String()),
	)

	return &AuthResponse{
		Success: true,
		Token:   token,
		User:    viewModel(user),
	}, nil
}

// CurrentUser re-fetches the account behind a verified token. Profile
// fields come from the store, not from claims, so stale tokens cannot
// serve outdated data.
func (s *AccountService) CurrentUser(ctx context.Context, userID int64) (*Profile, error) {
	ctx, span := s.startSpan(ctx, "AccountService.CurrentUser")
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("load account: %w", err)
	}

	return &Profile{UserViewModel: viewModel(user), CreatedAt: user.CreatedAt}, nil
}

func (s *AccountService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
