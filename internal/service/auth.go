package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/travel-planner/backend/internal/auth"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// emailPattern is deliberately loose: anything shaped like
// something@something.tld passes. Real validation happens when the address
// is actually used.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// minPasswordLength is the floor below which a password is rejected as weak.
const minPasswordLength = 6

// AuthService implements signup, login, and the password-reset flow.
// Failures surface as *domain.AuthError values carrying the fixed code the
// frontend keys its message table on.
type AuthService struct {
	users  repo.UserRepo
	tokens *auth.Tokens
	mailer Mailer
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens *auth.Tokens, mailer Mailer) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer}
}

// Signup registers a new account and returns the user with a signed access
// token, logging the caller straight in.
func (s *AuthService) Signup(ctx context.Context, email, password string) (domain.User, string, error) {
	if !emailPattern.MatchString(email) {
		return domain.User{}, "", domain.NewAuthError(domain.AuthCodeInvalidEmail)
	}
	if len(password) < minPasswordLength {
		return domain.User{}, "", domain.NewAuthError(domain.AuthCodeWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.User{}, "", domain.NewAuthError(domain.AuthCodeEmailInUse)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	token, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.NewAuthError(domain.AuthCodeUserNotFound)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", domain.NewAuthError(domain.AuthCodeWrongPassword)
	}

	token, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, token, nil
}

// RequestReset starts the password-reset flow for email. It succeeds whether
// or not an account exists so the endpoint cannot be used to probe for
// registered addresses.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service.AuthService.RequestReset: %w", err)
	}

	token, err := s.tokens.IssueReset(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("service.AuthService.RequestReset: %w", err)
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("service.AuthService.RequestReset: %w", err)
	}
	return nil
}

// ConfirmReset completes the password-reset flow: it verifies the reset
// token and replaces the account's password.
func (s *AuthService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	identity, err := s.tokens.VerifyReset(token)
	if err != nil {
		return fmt.Errorf("service.AuthService.ConfirmReset: %w", domain.ErrUnauthorized)
	}
	if len(newPassword) < minPasswordLength {
		return domain.NewAuthError(domain.AuthCodeWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service.AuthService.ConfirmReset: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, identity.UserID, string(hash)); err != nil {
		return fmt.Errorf("service.AuthService.ConfirmReset: %w", err)
	}
	return nil
}
