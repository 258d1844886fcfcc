package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/snapshot"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCache_LoadAndInvalidate(t *testing.T) {
	bus := snapshot.NewBus()
	cache := snapshot.NewCache(bus, 0, zap.NewNop())
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	got, err := snapshot.Load(ctx, cache, snapshot.Books, fetch)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)

	_, err = snapshot.Load(ctx, cache, snapshot.Books, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	bus.Changed(snapshot.Members)
	_, _ = snapshot.Load(ctx, cache, snapshot.Books, fetch)
	require.Equal(t, 1, calls)

	bus.Changed(snapshot.Books)
	_, _ = snapshot.Load(ctx, cache, snapshot.Books, fetch)
	require.Equal(t, 2, calls)
}

func TestCache_FetchErrorNotCached(t *testing.T) {
	cache := snapshot.NewCache(snapshot.NewBus(), time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := snapshot.Load(ctx, cache, snapshot.Fines, func(context.Context) ([]int, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	got, err := snapshot.Load(ctx, cache, snapshot.Fines, func(context.Context) ([]int, error) {
		return []int{1}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1}, got)
}

func TestBus_SubscribersInOrder(t *testing.T) {
	bus := snapshot.NewBus()
	var got []string
	bus.Subscribe(func(ev snapshot.Event) { got = append(got, "first:"+string(ev.Collection)) })
	bus.Subscribe(func(ev snapshot.Event) { got = append(got, "second:"+string(ev.Collection)) })

	bus.Changed(snapshot.Lendings, snapshot.Fines)
	require.Equal(t, []string{"first:lendings", "second:lendings", "first:fines", "second:fines"}, got)
}
