package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"goride/internal/domain"
)

// SessionStoreInterface defines the session caching and revocation
// operations used by the auth service. This interface allows for testing
// with mock implementations.
type SessionStoreInterface interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	SetUser(ctx context.Context, user *domain.User) error
	InvalidateUser(ctx context.Context, userID string) error
	RevokeSessions(ctx context.Context, userID string) error
	RestoreSessions(ctx context.Context, userID string) error
	IsRevoked(ctx context.Context, userID string) (bool, error)
}

// Ensure SessionStore implements SessionStoreInterface.
var _ SessionStoreInterface = (*SessionStore)(nil)

// SessionStore caches session users and tracks per-user token revocation
// in Redis.
type SessionStore struct {
	client   *redis.Client
	cacheTTL time.Duration
	tokenTTL time.Duration
}

// NewSessionStore creates a new SessionStore. cacheTTL bounds how stale a
// cached session user may be; tokenTTL bounds how long a revocation marker
// must outlive the tokens it invalidates.
func NewSessionStore(client *redis.Client, cacheTTL, tokenTTL time.Duration) *SessionStore {
	return &SessionStore{client: client, cacheTTL: cacheTTL, tokenTTL: tokenTTL}
}

const (
	sessionCachePrefix = "session:user:"
	revokedPrefix      = "session:revoked:"
)

// cachedUser is the Redis representation of a session user.
type cachedUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	IsBlocked       bool   `json:"is_blocked"`
	IsVerified      bool   `json:"is_verified"`
	DriverApproved  *bool  `json:"driver_approved,omitempty"`
	DriverSuspended *bool  `json:"driver_suspended,omitempty"`
}

// GetUser retrieves a session user from cache. Returns (nil, nil) on a
// cache miss.
func (s *SessionStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	data, err := s.client.Get(ctx, sessionCachePrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:         cached.ID,
		Name:       cached.Name,
		Email:      cached.Email,
		Role:       domain.Role(cached.Role),
		IsBlocked:  cached.IsBlocked,
		IsVerified: cached.IsVerified,
	}
	if cached.DriverApproved != nil || cached.DriverSuspended != nil {
		approval := &domain.DriverApproval{}
		if cached.DriverApproved != nil {
			approval.IsApproved = *cached.DriverApproved
		}
		if cached.DriverSuspended != nil {
			approval.IsSuspended = *cached.DriverSuspended
		}
		user.DriverApproval = approval
	}
	return user, nil
}

// SetUser stores a session user in cache with a short TTL so role and
// block-status changes surface quickly.
func (s *SessionStore) SetUser(ctx context.Context, user *domain.User) error {
	cached := cachedUser{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		IsBlocked:  user.IsBlocked,
		IsVerified: user.IsVerified,
	}
	if user.DriverApproval != nil {
		approved := user.DriverApproval.IsApproved
		suspended := user.DriverApproval.IsSuspended
		cached.DriverApproved = &approved
		cached.DriverSuspended = &suspended
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionCachePrefix+user.ID, data, s.cacheTTL).Err()
}

// InvalidateUser removes a session user from cache.
func (s *SessionStore) InvalidateUser(ctx context.Context, userID string) error {
	return s.client.Del(ctx, sessionCachePrefix+userID).Err()
}

// RevokeSessions marks every outstanding token for a user as denied. The
// marker lives at least as long as the tokens it invalidates.
func (s *SessionStore) RevokeSessions(ctx context.Context, userID string) error {
	return s.client.Set(ctx, revokedPrefix+userID, "1", s.tokenTTL).Err()
}

// RestoreSessions clears a user's revocation marker after the blocking
// condition is resolved.
func (s *SessionStore) RestoreSessions(ctx context.Context, userID string) error {
	return s.client.Del(ctx, revokedPrefix+userID).Err()
}

// IsRevoked reports whether a user's sessions are currently revoked.
func (s *SessionStore) IsRevoked(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+userID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
