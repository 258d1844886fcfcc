package session

import (
	"context"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const sessionTableName = `sessions`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB is the part of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgres struct {
	db  DB
	now func() time.Time
	log *zap.Logger
}

func NewPostgres(db DB, log *zap.Logger) *postgres {
	return &postgres{
		db:  db,
		now: time.Now,
		log: log.Named("session-pg"),
	}
}

// expiry is NULL for a session that never expires.
func expiry(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *postgres) Save(ctx context.Context, s model.Session) error {
	q, args, err := qb.Insert(sessionTableName).
		Columns("id", "token", "name", "email", "role", "created_at", "expires_at").
		Values(s.ID, s.Token, s.Name, s.Email, s.Role, s.CreatedAt, expiry(s.ExpiresAt)).
		ToSql()
	if err != nil {
		return err
	}
	if _, err = r.db.Exec(ctx, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errors.Errorf("session %s already exists", s.ID)
		}
		return errors.Wrap(err, "save session")
	}
	return nil
}

func (r *postgres) Get(ctx context.Context, id string) (model.Session, error) {
	q, args, err := qb.Select("id", "token", "name", "email", "role", "created_at", "expires_at").
		From(sessionTableName).
		Where(sq.Eq{"id": id}).
		Where(sq.Or{sq.Eq{"expires_at": nil}, sq.Gt{"expires_at": r.now()}}).
		ToSql()
	if err != nil {
		return model.Session{}, err
	}
	var (
		s       model.Session
		expires *time.Time
	)
	err = r.db.QueryRow(ctx, q, args...).
		Scan(&s.ID, &s.Token, &s.Name, &s.Email, &s.Role, &s.CreatedAt, &expires)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Session{}, errs.ErrNoSession
	}
	if err != nil {
		return model.Session{}, errors.Wrap(err, "get session")
	}
	if expires != nil {
		s.ExpiresAt = *expires
	}
	return s, nil
}

func (r *postgres) Delete(ctx context.Context, id string) error {
	q, args, err := qb.Delete(sessionTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, q, args...)
	return errors.Wrap(err, "delete session")
}

func (r *postgres) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q, args, err := qb.Delete(sessionTableName).Where(sq.LtOrEq{"expires_at": now}).ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "delete expired sessions")
	}
	return tag.RowsAffected(), nil
}
