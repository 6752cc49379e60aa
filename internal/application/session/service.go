package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-contacts-api/internal/domain"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
)

// Service resolves a bearer token into the authenticated user identity.
type Service interface {
	Resolve(ctx context.Context, token string) (*domain.CachedUser, error)
}

type tokenDecoder interface {
	Decode(tokenStr string) (*jwtinfra.Claims, error)
}

type userCache interface {
	Get(ctx context.Context, username string) (*domain.CachedUser, error)
	Put(ctx context.Context, username string, u *domain.CachedUser) error
}

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type service struct {
	codec    tokenDecoder
	cache    userCache
	userRepo userStore
}

func NewService(codec tokenDecoder, cache userCache, userRepo userStore) Service {
	return &service{codec: codec, cache: cache, userRepo: userRepo}
}

// Resolve validates the token, then answers from the cache when possible.
// A cache hit is trusted without a persistent lookup; a miss triggers
// exactly one lookup, whose result is cached for subsequent calls.
func (s *service) Resolve(ctx context.Context, token string) (*domain.CachedUser, error) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	username := claims.Subject
	if username == "" {
		return nil, domain.ErrMissingSubject
	}

	cached, err := s.cache.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user cache lookup: %w", domain.ErrBackendUnavailable)
	}
	if cached != nil {
		return cached, nil
	}

	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, fmt.Errorf("user lookup: %w", domain.ErrBackendUnavailable)
	}

	snap := u.Snapshot()
	// The cache has no authority; a failed fill must not reject an
	// authenticated user.
	if err := s.cache.Put(ctx, username, snap); err != nil {
		slog.Warn("failed to cache user snapshot", "username", username, "err", err)
	}
	return snap, nil
}
