package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type SessionRepo struct {
	rdb *redis.Client
}

func NewSessionRepo(rdb *redis.Client) *SessionRepo {
	return &SessionRepo{rdb: rdb}
}

func (r *SessionRepo) CreateSession(ctx context.Context, sessionID, email string, ttl time.Duration) error {
	return r.rdb.Set(ctx, sessionKey(sessionID), email, ttl).Err()
}

// SessionEmail returns "" for an unknown or expired session.
func (r *SessionRepo) SessionEmail(ctx context.Context, sessionID string) (string, error) {
	email, err := r.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return email, err
}

func (r *SessionRepo) DeleteSession(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

// MarkOnboarded and IsOnboarded share the repo since the marker lives next to
// the session keys.
func (r *SessionRepo) MarkOnboarded(ctx context.Context, email string) error {
	return r.rdb.Set(ctx, onboardingKey(email), onboardingCompleted, 0).Err()
}

func (r *SessionRepo) IsOnboarded(ctx context.Context, email string) (bool, error) {
	v, err := r.rdb.Get(ctx, onboardingKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == onboardingCompleted, nil
}
