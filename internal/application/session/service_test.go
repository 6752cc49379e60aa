package session

import (
	"context"
	"errors"
	"testing"

	"github.com/go-contacts-api/internal/domain"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockDecoder struct{ mock.Mock }

func (m *mockDecoder) Decode(tokenStr string) (*jwtinfra.Claims, error) {
	args := m.Called(tokenStr)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserCache struct{ mock.Mock }

func (m *mockUserCache) Get(ctx context.Context, username string) (*domain.CachedUser, error) {
	args := m.Called(ctx, username)
	if u, _ := args.Get(0).(*domain.CachedUser); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserCache) Put(ctx context.Context, username string, u *domain.CachedUser) error {
	return m.Called(ctx, username, u).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func claimsFor(subject string) *jwtinfra.Claims {
	return &jwtinfra.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}}
}

// --- tests ---

func TestResolve_InvalidToken(t *testing.T) {
	dec := &mockDecoder{}
	dec.On("Decode", "bad").Return(nil, domain.ErrInvalidToken)

	svc := NewService(dec, nil, nil)
	_, err := svc.Resolve(context.Background(), "bad")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestResolve_MissingSubject(t *testing.T) {
	dec := &mockDecoder{}
	dec.On("Decode", "tok").Return(claimsFor(""), nil)

	svc := NewService(dec, nil, nil)
	_, err := svc.Resolve(context.Background(), "tok")

	assert.True(t, errors.Is(err, domain.ErrMissingSubject))
}

func TestResolve_ColdCache_ExactlyOneLookupAndFill(t *testing.T) {
	dec := &mockDecoder{}
	cache := &mockUserCache{}
	us := &mockUserStore{}

	dec.On("Decode", "tok").Return(claimsFor("alice@example.com"), nil)
	cache.On("Get", mock.Anything, "alice@example.com").Return(nil, nil)
	us.On("GetByUsername", mock.Anything, "alice@example.com").
		Return(&domain.User{ID: 7, Username: "alice@example.com"}, nil).Once()
	cache.On("Put", mock.Anything, "alice@example.com", mock.AnythingOfType("*domain.CachedUser")).Return(nil)

	svc := NewService(dec, cache, us)
	got, err := svc.Resolve(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "alice@example.com", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	us.AssertNumberOfCalls(t, "GetByUsername", 1)
	cache.AssertExpectations(t)
}

func TestResolve_WarmCache_NoPersistentLookup(t *testing.T) {
	dec := &mockDecoder{}
	cache := &mockUserCache{}
	us := &mockUserStore{}

	dec.On("Decode", "tok").Return(claimsFor("alice@example.com"), nil)
	cache.On("Get", mock.Anything, "alice@example.com").
		Return(&domain.CachedUser{ID: 7, Username: "alice@example.com", Email: "alice@example.com"}, nil)

	svc := NewService(dec, cache, us)
	got, err := svc.Resolve(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	us.AssertNumberOfCalls(t, "GetByUsername", 0)
	cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_UnknownUser(t *testing.T) {
	dec := &mockDecoder{}
	cache := &mockUserCache{}
	us := &mockUserStore{}

	dec.On("Decode", "tok").Return(claimsFor("ghost@example.com"), nil)
	cache.On("Get", mock.Anything, "ghost@example.com").Return(nil, nil)
	us.On("GetByUsername", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	svc := NewService(dec, cache, us)
	_, err := svc.Resolve(context.Background(), "tok")

	assert.True(t, errors.Is(err, domain.ErrUnknownUser))
}

func TestResolve_StoreFailureIsBackendUnavailable(t *testing.T) {
	dec := &mockDecoder{}
	cache := &mockUserCache{}
	us := &mockUserStore{}

	dec.On("Decode", "tok").Return(claimsFor("alice@example.com"), nil)
	cache.On("Get", mock.Anything, "alice@example.com").Return(nil, nil)
	us.On("GetByUsername", mock.Anything, "alice@example.com").
		Return(nil, errors.New("db error: connection timeout"))

	svc := NewService(dec, cache, us)
	_, err := svc.Resolve(context.Background(), "tok")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBackendUnavailable))
	assert.False(t, errors.Is(err, domain.ErrUnknownUser))
}

func TestResolve_CacheReadFailureIsBackendUnavailable(t *testing.T) {
	dec := &mockDecoder{}
	cache := &mockUserCache{}

	dec.On("Decode", "tok").Return(claimsFor("alice@example.com"), nil)
	cache.On("Get", mock.Anything, "alice@example.com").Return(nil, errors.New("cache get: connection refused"))

	svc := NewService(dec, cache, &mockUserStore{})
	_, err := svc.Resolve(context.Background(), "tok")

	assert.True(t, errors.Is(err, domain.ErrBackendUnavailable))
}

func TestResolve_CacheFillFailureStillResolves(t *testing.T) {
	dec := &mockDecoder{}
	cache := &mockUserCache{}
	us := &mockUserStore{}

	dec.On("Decode", "tok").Return(claimsFor("alice@example.com"), nil)
	cache.On("Get", mock.Anything, "alice@example.com").Return(nil, nil)
	us.On("GetByUsername", mock.Anything, "alice@example.com").
		Return(&domain.User{ID: 7, Username: "alice@example.com"}, nil)
	cache.On("Put", mock.Anything, "alice@example.com", mock.Anything).
		Return(errors.New("cache set: connection refused"))

	svc := NewService(dec, cache, us)
	got, err := svc.Resolve(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}
