package session

import (
	"context"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "admin:session:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// record keeps the token, which model.Session hides from JSON.
type record struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type redisStore struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedis(rdb *redis.Client, log *zap.Logger) *redisStore {
	return &redisStore{
		rdb: rdb,
		log: log.Named("session-redis"),
	}
}

func (r *redisStore) Save(ctx context.Context, s model.Session) error {
	data, err := json.Marshal(record(s))
	if err != nil {
		return err
	}
	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		if ttl = time.Until(s.ExpiresAt); ttl <= 0 {
			return nil
		}
	}
	return errors.Wrap(r.rdb.Set(ctx, keyPrefix+s.ID, data, ttl).Err(), "save session")
}

func (r *redisStore) Get(ctx context.Context, id string) (model.Session, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Session{}, errs.ErrNoSession
	}
	if err != nil {
		return model.Session{}, errors.Wrap(err, "get session")
	}
	var rec record
	if err = json.Unmarshal(data, &rec); err != nil {
		return model.Session{}, errors.Wrap(err, "decode session")
	}
	return model.Session(rec), nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(r.rdb.Del(ctx, keyPrefix+id).Err(), "delete session")
}

// DeleteExpired is a no-op, keys expire on their own.
func (r *redisStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
