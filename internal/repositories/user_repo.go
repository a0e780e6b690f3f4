package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/influencer-portal/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	updateAttempts = 10
	updateDelay    = 5 * time.Millisecond
)

// UserRepo keeps one JSON record per e-mail.
type UserRepo struct {
	rdb *redis.Client
}

func NewUserRepo(rdb *redis.Client) *UserRepo {
	return &UserRepo{rdb: rdb}
}

// GetUser returns (nil, nil) when no record exists.
func (r *UserRepo) GetUser(ctx context.Context, email string) (*models.UserRecord, error) {
	raw, err := r.rdb.Get(ctx, userKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (r *UserRepo) SaveUser(ctx context.Context, rec models.UserRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, userKey(rec.Credentials.Email), data, 0).Err()
}

// UpdateUser runs fn on the stored record inside a WATCH transaction. A write
// to the key between the read and the commit aborts the transaction and fn
// runs again on the fresh record.
func (r *UserRepo) UpdateUser(ctx context.Context, email string, fn func(*models.UserRecord) error) (*models.UserRecord, error) {
	key := userKey(email)
	var out *models.UserRecord

	txf := func(tx *redis.Tx) error {
		out = nil
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		rec, err := decodeUser(raw)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			out = rec
		}
		return err
	}

	err := retry.Do(
		func() error { return r.rdb.Watch(ctx, txf, key) },
		retry.Context(ctx),
		retry.Attempts(updateAttempts),
		retry.Delay(updateDelay),
		retry.RetryIf(func(err error) bool { return errors.Is(err, redis.TxFailedErr) }),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeUser(raw []byte) (*models.UserRecord, error) {
	var rec models.UserRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("corrupt user record: %w", err)
	}
	return &rec, nil
}
