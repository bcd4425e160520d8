package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/myhealth/portal/internal/portal/domain"
	"github.com/myhealth/portal/internal/portal/store/drivers/memory"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	application := NewWithKV(Config{Env: "dev"}, memory.NewStore(), logger)
	t.Cleanup(func() { _ = application.Close() })

	return application
}

func TestCaregiverSendFlowEndToEnd(t *testing.T) {
	t.Parallel()

	application := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, application.Directory.Seed(ctx))

	caregiver, err := application.Directory.Authenticate(ctx, domain.RoleCaregiver, "caregiver", "password123")
	require.NoError(t, err)
	patient, err := application.Directory.FindByField(ctx, "username", "ptobe")
	require.NoError(t, err)

	require.NoError(t, application.Messages.SendFromCaregiver(ctx, caregiver, patient, "Please confirm dosage"))

	// The wired fan-out: one send, one open ticket, matching references.
	queue := application.Tickets.List(ctx)
	require.Len(t, queue, 1)
	require.Equal(t, patient.ID, queue[0].PatientID)
	require.Equal(t, caregiver.ID, queue[0].FromCaregiverID)
	require.Equal(t, "Please confirm dosage", queue[0].Text)
	require.False(t, queue[0].Resolved)

	// Issues never cross into the queue.
	require.NoError(t, application.Issues.Add(ctx, patient.ID, "caregiver", "door sensor stuck"))
	require.Len(t, application.Tickets.List(ctx), 1)
}

func TestSessionRoundTripThroughApp(t *testing.T) {
	t.Parallel()

	application := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, application.Session.SetCurrentUser(ctx, "usr_abc"))
	require.Equal(t, "usr_abc", application.Session.CurrentUserID(ctx))

	require.NoError(t, application.Session.Logout(ctx))
	require.Empty(t, application.Session.CurrentUserID(ctx))
}
