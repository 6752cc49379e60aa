package user

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/id"
	"github.com/go-contacts-api/internal/pkg/password"
)

type Service interface {
	Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// UpdateAvatar uploads the avatar image and persists its URL on the
	// user. Returns the new avatar URL.
	UpdateAvatar(ctx context.Context, username, filename string, r io.Reader) (string, error)
}

type userStore interface {
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateAvatarURL(ctx context.Context, userID int64, avatarURL string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type service struct {
	repo    userStore
	avatars objectStore
}

func NewService(repo userStore, avatars objectStore) Service {
	return &service{repo: repo, avatars: avatars}
}

func (s *service) Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	// The unique index on username is the authority; the repo maps a
	// duplicate insert to ErrConflict, so no check-then-insert race exists.
	return s.repo.Create(ctx, req.Username, hash)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *service) UpdateAvatar(ctx context.Context, username, filename string, r io.Reader) (string, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("avatars/user_%d_%s%s", u.ID, id.New(), ext)
	url, err := s.avatars.Upload(ctx, key, r, contentTypeFor(ext))
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateAvatarURL(ctx, u.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
