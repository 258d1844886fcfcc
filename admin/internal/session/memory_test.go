package session

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/library-admin/admin/config"
	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	live := model.Session{ID: NewID(), Token: "t1", Name: "Admin", ExpiresAt: now.Add(time.Hour)}
	stale := model.Session{ID: NewID(), Token: "t2", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, m.Save(ctx, live))
	require.NoError(t, m.Save(ctx, stale))
	require.NotEqual(t, live.ID, stale.ID)

	got, err := m.Get(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, "t1", got.Token)

	_, err = m.Get(ctx, stale.ID)
	require.ErrorIs(t, err, errs.ErrNoSession)
	_, err = m.Get(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrNoSession)

	n, err := m.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, m.Delete(ctx, live.ID))
	_, err = m.Get(ctx, live.ID)
	require.ErrorIs(t, err, errs.ErrNoSession)
}

func TestNew(t *testing.T) {
	log := zap.NewNop()

	s, err := New(config.Session{Backend: config.SessionMemory}, nil, nil, log)
	require.NoError(t, err)
	require.NotNil(t, s)

	_, err = New(config.Session{Backend: config.SessionPostgres}, nil, nil, log)
	require.Error(t, err)
	_, err = New(config.Session{Backend: config.SessionRedis}, nil, nil, log)
	require.Error(t, err)
	_, err = New(config.Session{Backend: "mongo"}, nil, nil, log)
	require.Error(t, err)
}
