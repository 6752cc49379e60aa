package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-contacts-api/internal/domain"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
	"github.com/go-contacts-api/internal/infrastructure/smtp"
	"github.com/go-contacts-api/internal/pkg/password"
)

// Service handles credential verification and the password-reset flow.
type Service interface {
	// Authenticate returns the user on a correct (username, password) pair.
	// Unknown user and wrong password are indistinguishable to the caller.
	Authenticate(ctx context.Context, username, plainPassword string) (*domain.User, error)
	// Login authenticates and mints an access token for the user.
	Login(ctx context.Context, username, plainPassword string) (string, error)
	// RequestPasswordReset emails a short-lived reset token to the user.
	RequestPasswordReset(ctx context.Context, email string) error
	// ResetPassword overwrites the stored hash and purges the user's
	// cached snapshot.
	ResetPassword(ctx context.Context, username, newPassword string) error
	// ConfirmPasswordReset validates a reset token and applies ResetPassword
	// for its subject.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, username string) error
}

type tokenCodec interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Decode(tokenStr string) (*jwtinfra.Claims, error)
}

type service struct {
	userRepo       userStore
	cache          cacheInvalidator
	codec          tokenCodec
	mailer         smtp.Mailer
	accessTokenTTL time.Duration
	resetTokenTTL  time.Duration
}

type ServiceDeps struct {
	UserRepo       userStore
	Cache          cacheInvalidator
	Codec          tokenCodec
	Mailer         smtp.Mailer
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:       deps.UserRepo,
		cache:          deps.Cache,
		codec:          deps.Codec,
		mailer:         deps.Mailer,
		accessTokenTTL: deps.AccessTokenTTL,
		resetTokenTTL:  deps.ResetTokenTTL,
	}
}

func (s *service) Authenticate(ctx context.Context, username, plainPassword string) (*domain.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("incorrect username or password: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("user lookup: %w", domain.ErrBackendUnavailable)
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, fmt.Errorf("incorrect username or password: %w", domain.ErrUnauthorized)
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, username, plainPassword string) (string, error) {
	u, err := s.Authenticate(ctx, username, plainPassword)
	if err != nil {
		return "", err
	}
	return s.codec.Issue(u.Username, s.accessTokenTTL)
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByUsername(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user with this email does not exist: %w", domain.ErrUnknownUser)
		}
		return fmt.Errorf("user lookup: %w", domain.ErrBackendUnavailable)
	}
	token, err := s.codec.Issue(u.Username, s.resetTokenTTL)
	if err != nil {
		return err
	}
	return s.mailer.SendEmail(u.Username,
		"Password Reset Request",
		"Use this token to reset your password: "+token)
}

func (s *service) ResetPassword(ctx context.Context, username, newPassword string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrUnknownUser)
		}
		return fmt.Errorf("user lookup: %w", domain.ErrBackendUnavailable)
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, username, hash); err != nil {
		// The user can disappear between the lookup and the update.
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user not found: %w", domain.ErrUnknownUser)
		}
		return fmt.Errorf("update password: %w", domain.ErrBackendUnavailable)
	}
	// Purge the snapshot so a stale identity cannot outlive the credential
	// change for up to the cache TTL.
	if err := s.cache.Invalidate(ctx, username); err != nil {
		slog.Warn("failed to invalidate cached user after password reset", "username", username, "err", err)
	}
	return nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return err
	}
	if claims.Subject == "" {
		return domain.ErrMissingSubject
	}
	return s.ResetPassword(ctx, claims.Subject, newPassword)
}
