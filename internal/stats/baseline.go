package stats

import (
	"context"

	"go.uber.org/zap"
)

// Tracked metrics for the "new since last seen" badges.
const (
	MetricTutorsTotal    = "tutors_total"
	MetricStudentsActive = "students_active"
	MetricParentsActive  = "parents_active"
)

// Store abstracts baseline persistence so the heuristic stays unit-testable
// and callers choose where it lives (redis, memory).
type Store interface {
	Get(ctx context.Context, key string) (int64, bool, error)
	Set(ctx context.Context, key string, value int64) error
}

// Baseline implements the non-authoritative "has this total grown since we
// last looked" heuristic. The stored baseline only moves on explicit
// acknowledgement, so the badge stays lit until the operator looks.
type Baseline struct {
	store  Store
	prefix string
	logger *zap.Logger
}

// NewBaseline constructs the heuristic over the supplied store.
func NewBaseline(store Store, prefix string, logger *zap.Logger) *Baseline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = "admin:baseline"
	}
	return &Baseline{store: store, prefix: prefix, logger: logger}
}

// ObserveTotal reports whether the total has grown past the stored baseline.
// The first observation seeds the baseline and reports no growth. Store
// trouble degrades to "no growth" — the badge is decoration, not state.
func (b *Baseline) ObserveTotal(ctx context.Context, metric string, total int64) bool {
	key := b.key(metric)
	prev, ok, err := b.store.Get(ctx, key)
	if err != nil {
		b.logger.Warn("baseline read failed", zap.String("metric", metric), zap.Error(err))
		return false
	}
	if !ok {
		if err := b.store.Set(ctx, key, total); err != nil {
			b.logger.Warn("baseline seed failed", zap.String("metric", metric), zap.Error(err))
		}
		return false
	}
	return total > prev
}

// Acknowledge moves the baseline up to the acknowledged total, clearing the
// badge until the metric grows again.
func (b *Baseline) Acknowledge(ctx context.Context, metric string, total int64) error {
	return b.store.Set(ctx, b.key(metric), total)
}

func (b *Baseline) key(metric string) string {
	return b.prefix + ":" + metric
}
