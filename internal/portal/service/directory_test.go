package service

import (
	"context"
	"strings"
	"testing"

	"github.com/myhealth/portal/internal/portal/domain"
	"github.com/myhealth/portal/internal/portal/store"
	"github.com/stretchr/testify/require"
)

func TestUpsertByUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := &DirectoryService{Store: newTestStore(t)}

	t.Run("creates with a fresh user id", func(t *testing.T) {
		created, err := dir.UpsertByUsername(ctx, domain.User{
			Role:     domain.RolePatient,
			FullName: "Patrick Tobe",
			Username: "ptobe",
			Password: "patient123",
		})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(created.ID, "usr_"))
		require.Len(t, dir.List(ctx), 1)
	})

	t.Run("merges into the existing record", func(t *testing.T) {
		updated, err := dir.UpsertByUsername(ctx, domain.User{
			Username: "ptobe",
			MRN:      "00298371",
		})
		require.NoError(t, err)

		users := dir.List(ctx)
		require.Len(t, users, 1)
		require.Equal(t, users[0], updated)

		// Fields absent from the upsert are preserved, id included.
		require.Equal(t, "Patrick Tobe", updated.FullName)
		require.Equal(t, "00298371", updated.MRN)
		require.Equal(t, domain.RolePatient, updated.Role)
	})

	t.Run("is idempotent", func(t *testing.T) {
		before, err := dir.FindByField(ctx, "username", "ptobe")
		require.NoError(t, err)

		again, err := dir.UpsertByUsername(ctx, domain.User{
			Username: "ptobe",
			MRN:      "00298371",
		})
		require.NoError(t, err)
		require.Equal(t, before.ID, again.ID)
		require.Len(t, dir.List(ctx), 1)
	})

	t.Run("never duplicates a username", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			_, err := dir.UpsertByUsername(ctx, domain.User{Username: "ptobe", Password: "x"})
			require.NoError(t, err)
		}

		seen := map[string]int{}
		for _, u := range dir.List(ctx) {
			seen[u.Username]++
		}
		require.Equal(t, 1, seen["ptobe"])
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := &DirectoryService{Store: newTestStore(t)}

	a, err := dir.UpsertByUsername(ctx, domain.User{Role: domain.RoleCaregiver, Username: "x", Password: "p"})
	require.NoError(t, err)
	b, err := dir.UpsertByUsername(ctx, domain.User{Role: domain.RoleCaregiver, Username: "y", Password: "p"})
	require.NoError(t, err)

	t.Run("replaces by id", func(t *testing.T) {
		a.FullName = "Renamed"
		require.NoError(t, dir.Update(ctx, a))

		got, err := dir.FindByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", got.FullName)
	})

	t.Run("unknown id is a silent no-op, never a create", func(t *testing.T) {
		ghost := domain.User{ID: "usr_missing", Username: "ghost"}
		require.NoError(t, dir.Update(ctx, ghost))
		require.Len(t, dir.List(ctx), 2)
	})

	t.Run("does not enforce username uniqueness", func(t *testing.T) {
		// Unlike UpsertByUsername, the id-keyed path can introduce a
		// duplicate username. Both records then answer to "x".
		b.Username = "x"
		require.NoError(t, dir.Update(ctx, b))

		count := 0
		for _, u := range dir.List(ctx) {
			if u.Username == "x" {
				count++
			}
		}
		require.Equal(t, 2, count)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := &DirectoryService{Store: newTestStore(t)}

	u, err := dir.UpsertByUsername(ctx, domain.User{Role: domain.RoleAdmin, Username: "admin", Password: "p"})
	require.NoError(t, err)

	require.NoError(t, dir.Delete(ctx, u.ID))
	require.Empty(t, dir.List(ctx))

	_, err = dir.FindByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, dir.Delete(ctx, u.ID))
}

func TestLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := &DirectoryService{Store: newTestStore(t)}

	_, err := dir.UpsertByUsername(ctx, domain.User{Role: domain.RoleCaregiver, Username: "cg1", Password: "p"})
	require.NoError(t, err)
	p, err := dir.UpsertByUsername(ctx, domain.User{
		Role: domain.RolePatient, Username: "pt1", Password: "p", MRN: "12345",
	})
	require.NoError(t, err)

	t.Run("findByField matches exactly", func(t *testing.T) {
		got, err := dir.FindByField(ctx, "mrn", "12345")
		require.NoError(t, err)
		require.Equal(t, p.ID, got.ID)

		_, err = dir.FindByField(ctx, "mrn", "123")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown field never matches", func(t *testing.T) {
		_, err := dir.FindByField(ctx, "favouriteColour", "")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("findByRole filters in insertion order", func(t *testing.T) {
		patients := dir.FindByRole(ctx, domain.RolePatient)
		require.Len(t, patients, 1)
		require.Equal(t, "pt1", patients[0].Username)

		require.Empty(t, dir.FindByRole(ctx, domain.RoleAdmin))
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := &DirectoryService{Store: newTestStore(t)}
	require.NoError(t, dir.Seed(ctx))

	t.Run("matches role, username and password", func(t *testing.T) {
		u, err := dir.Authenticate(ctx, domain.RoleCaregiver, "caregiver", "password123")
		require.NoError(t, err)
		require.Equal(t, domain.RoleCaregiver, u.Role)
	})

	t.Run("wrong password misses", func(t *testing.T) {
		_, err := dir.Authenticate(ctx, domain.RoleCaregiver, "caregiver", "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("right credentials under the wrong role miss", func(t *testing.T) {
		_, err := dir.Authenticate(ctx, domain.RolePatient, "caregiver", "password123")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := &DirectoryService{Store: newTestStore(t)}

	require.NoError(t, dir.Seed(ctx))
	require.Len(t, dir.List(ctx), 3)

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, dir.Seed(ctx))
		require.Len(t, dir.List(ctx), 3)
	})

	t.Run("does not run against a non-empty directory", func(t *testing.T) {
		fresh := &DirectoryService{Store: newTestStore(t)}
		_, err := fresh.UpsertByUsername(ctx, domain.User{Role: domain.RoleAdmin, Username: "only", Password: "p"})
		require.NoError(t, err)

		require.NoError(t, fresh.Seed(ctx))
		require.Len(t, fresh.List(ctx), 1)
	})

	t.Run("demo patient carries the clinical fields", func(t *testing.T) {
		pt, err := dir.FindByField(ctx, "username", "ptobe")
		require.NoError(t, err)
		require.Equal(t, "00298371", pt.MRN)
		require.Equal(t, "O+", pt.Blood)
		require.Len(t, pt.Meds, 2)
	})
}
