package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
)

func TestCountByStatus(t *testing.T) {
	apps := []models.TutorApplication{
		{Status: models.StatusPending},
		{Status: models.StatusPending},
		{Status: models.StatusVerified},
		{Status: models.StatusRejected},
	}

	counts := CountByStatus(apps)
	assert.Equal(t, 2, counts[models.StatusPending])
	assert.Equal(t, 1, counts[models.StatusVerified])
	assert.Equal(t, 1, counts[models.StatusRejected])
}

func TestCountUsersByStatusSkipsStatusless(t *testing.T) {
	users := []models.UserSummary{
		{Role: models.RoleTutor, Status: models.StatusPending},
		{Role: models.RoleStudent},
	}

	counts := CountUsersByStatus(users)
	assert.Equal(t, 1, counts[models.StatusPending])
	assert.Len(t, counts, 1)
}

func TestBaselineFirstObservationSeeds(t *testing.T) {
	store := NewMemoryStore()
	baseline := NewBaseline(store, "test", zap.NewNop())
	ctx := context.Background()

	assert.False(t, baseline.ObserveTotal(ctx, MetricTutorsTotal, 10))

	// Baseline is seeded; the same total is not growth.
	assert.False(t, baseline.ObserveTotal(ctx, MetricTutorsTotal, 10))
	assert.True(t, baseline.ObserveTotal(ctx, MetricTutorsTotal, 11))
}

func TestBaselineStaysLitUntilAcknowledged(t *testing.T) {
	store := NewMemoryStore()
	baseline := NewBaseline(store, "test", zap.NewNop())
	ctx := context.Background()

	baseline.ObserveTotal(ctx, MetricStudentsActive, 5)
	assert.True(t, baseline.ObserveTotal(ctx, MetricStudentsActive, 8))
	// Observation alone does not move the baseline.
	assert.True(t, baseline.ObserveTotal(ctx, MetricStudentsActive, 8))

	require.NoError(t, baseline.Acknowledge(ctx, MetricStudentsActive, 8))
	assert.False(t, baseline.ObserveTotal(ctx, MetricStudentsActive, 8))
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (int64, bool, error) {
	return 0, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, int64) error {
	return errors.New("store down")
}

func TestBaselineDegradesOnStoreFailure(t *testing.T) {
	baseline := NewBaseline(failingStore{}, "test", zap.NewNop())
	assert.False(t, baseline.ObserveTotal(context.Background(), MetricParentsActive, 100))
}
