package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/influencer-portal/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// SignupRepo stores in-progress signups until they complete or expire.
type SignupRepo struct {
	rdb *redis.Client
}

func NewSignupRepo(rdb *redis.Client) *SignupRepo {
	return &SignupRepo{rdb: rdb}
}

func (r *SignupRepo) GetDraft(ctx context.Context, id string) (*models.SignupDraft, error) {
	raw, err := r.rdb.Get(ctx, signupKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d models.SignupDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("corrupt signup draft: %w", err)
	}
	return &d, nil
}

func (r *SignupRepo) SaveDraft(ctx context.Context, d models.SignupDraft, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, signupKey(d.ID), data, ttl).Err()
}

func (r *SignupRepo) DeleteDraft(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, signupKey(id)).Err()
}
