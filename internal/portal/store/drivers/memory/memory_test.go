package memory_test

import (
	"context"
	"testing"

	"github.com/myhealth/portal/internal/portal/store"
	"github.com/myhealth/portal/internal/portal/store/drivers/memory"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	_, err := s.Get(context.Background(), "absent")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), got)

	// Set replaces wholesale.
	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestGetReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Set(ctx, "k", []byte("abc")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}

func TestLifecycleNoOps(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
}
