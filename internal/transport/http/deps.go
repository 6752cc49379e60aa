package http

import (
	"context"

	"github.com/go-contacts-api/internal/domain"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
	"github.com/go-contacts-api/internal/infrastructure/postgres"
	s3infra "github.com/go-contacts-api/internal/infrastructure/s3"
	"github.com/go-contacts-api/internal/infrastructure/smtp"
)

// UserCache is the minimal interface the router requires from a user-snapshot
// cache backend. Both the Redis and in-process implementations satisfy it.
type UserCache interface {
	Get(ctx context.Context, username string) (*domain.CachedUser, error)
	Put(ctx context.Context, username string, u *domain.CachedUser) error
	Invalidate(ctx context.Context, username string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *postgres.UserRepo
	ContactRepo *postgres.ContactRepo
	UserCache   UserCache
	AvatarStore *s3infra.Store
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}
