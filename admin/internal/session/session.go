// Package session stores signed-in librarians together with their upstream token.
package session

import (
	"context"
	"time"

	"github.com/Astemirdum/library-admin/admin/config"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store returns errs.ErrNoSession from Get for unknown or expired ids.
type Store interface {
	Save(ctx context.Context, s model.Session) error
	Get(ctx context.Context, id string) (model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

func NewID() string {
	return uuid.NewString()
}

// New builds the store selected by cfg.Backend. db and rdb may be nil for the other backends.
func New(cfg config.Session, db *pgxpool.Pool, rdb *redis.Client, log *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case config.SessionMemory, "":
		return NewMemory(), nil
	case config.SessionPostgres:
		if db == nil {
			return nil, errors.New("postgres session store without a database")
		}
		return NewPostgres(db, log), nil
	case config.SessionRedis:
		if rdb == nil {
			return nil, errors.New("redis session store without a client")
		}
		return NewRedis(rdb, log), nil
	}
	return nil, errors.Errorf("unknown session backend %q", cfg.Backend)
}
