package workflow_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorlink-admin-core/internal/gateway"
	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	"github.com/noah-isme/tutorlink-admin-core/internal/stubserver"
	"github.com/noah-isme/tutorlink-admin-core/internal/token"
	"github.com/noah-isme/tutorlink-admin-core/internal/workflow"
	appErrors "github.com/noah-isme/tutorlink-admin-core/pkg/errors"
)

// spins up the stub backend and a fully wired gateway client talking to it.
func newIntegrationEnv(t *testing.T) (*stubserver.Store, *gateway.Client, *workflow.Service) {
	t.Helper()

	store := stubserver.NewStore()
	require.NoError(t, store.Seed())

	tokens := stubserver.NewTokenManager("integration-secret", time.Hour)
	server := httptest.NewServer(stubserver.Router(stubserver.Params{
		Store:  store,
		Tokens: tokens,
	}))
	t.Cleanup(server.Close)

	bearer, err := tokens.Issue("a-1", "admin@tutorlink.test", models.RoleAdmin)
	require.NoError(t, err)

	client := gateway.New(gateway.Params{
		BaseURL:   server.URL,
		APIPrefix: "/api/admin",
		Tokens:    token.NewMemoryScope(bearer),
	})
	return store, client, workflow.NewService(client, nil, nil)
}

func TestVerificationWorkflowEndToEnd(t *testing.T) {
	_, client, svc := newIntegrationEnv(t)
	ctx := context.Background()

	app, err := client.TutorApplication(ctx, "u-1001")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, app.Status)
	require.Len(t, app.Documents, 2)

	// Approval is blocked while documents are unverified, both locally and
	// server-side.
	err = svc.Approve(ctx, app, "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	for _, doc := range app.Documents {
		require.NoError(t, svc.VerifyDocument(ctx, app, doc.Type))
	}
	assert.True(t, app.AllDocumentsVerified())

	// Documents alone are not enough; the screening checks still block.
	err = svc.Approve(ctx, app, "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	// A locally flipped flag cannot bypass the server-side re-check.
	app.BackgroundCheck = true
	app.ReferenceCheck = true
	app.QualificationCheck = true

	err = svc.Approve(ctx, app, "screening complete")
	require.Error(t, err, "server still holds unchecked screening flags")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestVerificationWorkflowApproveAndFinalize(t *testing.T) {
	store, client, svc := newIntegrationEnv(t)
	ctx := context.Background()

	app, err := client.TutorApplication(ctx, "u-1001")
	require.NoError(t, err)

	for _, doc := range app.Documents {
		require.NoError(t, svc.VerifyDocument(ctx, app, doc.Type))
	}
	require.NoError(t, store.SetChecks("u-1001", true, true, true))

	// Refetch so the local snapshot reflects the screening flags.
	app, err = client.TutorApplication(ctx, "u-1001")
	require.NoError(t, err)
	require.True(t, app.AllDocumentsVerified())
	require.True(t, app.ChecksPassed())

	require.NoError(t, svc.Approve(ctx, app, "screening complete"))
	assert.Equal(t, models.StatusVerified, app.Status)

	// Approving again reports the terminal state, locally first.
	err = svc.Approve(ctx, app, "again")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrFinalized))

	// A stale snapshot that slips past the preflight gets the same answer
	// from the server.
	stale, err := client.TutorApplication(ctx, "u-1001")
	require.NoError(t, err)
	stale.Status = models.StatusPending
	err = svc.Approve(ctx, stale, "stale")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrFinalized))
}

func TestNormalizationAgainstLiveServer(t *testing.T) {
	_, client, _ := newIntegrationEnv(t)
	ctx := context.Background()

	app, err := client.TutorApplication(ctx, "u-1001")
	require.NoError(t, err)

	// Relative upload paths come back anchored on the backend origin.
	for _, doc := range app.Documents {
		assert.Contains(t, doc.URL, client.BaseURL()+"/")
	}
	assert.NotNil(t, app.Subjects)
	assert.Equal(t, []string{"Math", "Physics"}, app.Subjects)
}

func TestInterviewSchedulingEndToEnd(t *testing.T) {
	store, client, svc := newIntegrationEnv(t)
	ctx := context.Background()

	app, err := client.TutorApplication(ctx, "u-1001")
	require.NoError(t, err)

	slots := client.AvailableInterviewSlots(ctx, "2026-09-03")
	require.NotEmpty(t, slots)

	picker := workflow.NewSlotPicker("2026-09-03")
	for _, slot := range slots {
		if slot.Available {
			picker.Select(slot.Time)
		}
	}
	require.NoError(t, svc.SetPreferredSlots(ctx, app, picker.ISODateTimes()))
	require.NoError(t, svc.ToggleInterview(ctx, app, true))

	stored, err := store.Application("u-1001")
	require.NoError(t, err)
	assert.True(t, stored.InterviewEnabled)
	assert.Equal(t, picker.ISODateTimes(), stored.PreferredSlots)
}

func TestUnauthenticatedClientFallsBack(t *testing.T) {
	store := stubserver.NewStore()
	require.NoError(t, store.Seed())
	server := httptest.NewServer(stubserver.Router(stubserver.Params{
		Store:  store,
		Tokens: stubserver.NewTokenManager("integration-secret", time.Hour),
	}))
	t.Cleanup(server.Close)

	authExpired := false
	client := gateway.New(gateway.Params{
		BaseURL:       server.URL,
		APIPrefix:     "/api/admin",
		OnAuthExpired: func() { authExpired = true },
	})

	_, err := client.DashboardStats(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrAuthRequired))
	assert.True(t, authExpired)

	// Slot lookup degrades to the deterministic fallback instead of failing.
	slots := client.AvailableInterviewSlots(context.Background(), "2026-09-10")
	require.Len(t, slots, 6)
	unavailable := 0
	for _, slot := range slots {
		if !slot.Available {
			unavailable++
			assert.Equal(t, "11:00", slot.Time)
		}
	}
	assert.Equal(t, 1, unavailable)
}
