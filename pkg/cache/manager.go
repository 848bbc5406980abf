package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/site-paginate/pkg/pagination"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a stored plan is kept without being refreshed.
const DefaultTTL = 30 * 24 * time.Hour

var (
	// ErrCacheMiss indicates the requested plan was not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidPlan indicates the stored plan is invalid or corrupted
	ErrInvalidPlan = errors.New("invalid cached plan")
)

// Manager stores page plans in Redis.
type Manager struct {
	redis *redis.Client
	ttl   time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTTL overrides DefaultTTL. A non-positive ttl keeps plans forever.
func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// NewManager creates a new plan cache manager with Redis backend.
func NewManager(redisClient *redis.Client, opts ...ManagerOption) *Manager {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	m := &Manager{
		redis: redisClient,
		ttl:   DefaultTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get retrieves a plan by key.
// Returns ErrCacheMiss if the key doesn't exist.
func (m *Manager) Get(ctx context.Context, key PlanKey) (*Plan, error) {
	data, err := m.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			PlanCacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		PlanCacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		PlanCacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	PlanCacheHits.Inc()
	return &plan, nil
}

// Set stores a plan, replacing any previous one.
func (m *Manager) Set(ctx context.Context, key PlanKey, plan *Plan) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	data, err := json.Marshal(plan)
	if err != nil {
		PlanCacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal plan: %w", err)
	}

	ttl := m.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := m.redis.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		PlanCacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	PlanCacheSize.Add(float64(len(data)))
	return nil
}

// Delete removes a plan.
func (m *Manager) Delete(ctx context.Context, key PlanKey) error {
	if err := m.redis.Del(ctx, key.String()).Err(); err != nil {
		PlanCacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Diff returns the page numbers of plan that changed since the stored
// plan. On a cache miss or a corrupted entry every page counts as changed.
func (m *Manager) Diff(ctx context.Context, key PlanKey, plan Plan) ([]int, error) {
	prev, err := m.previous(ctx, key)
	if err != nil {
		return nil, err
	}
	return Changed(prev, plan), nil
}

// Sync diffs the windows of a run against the stored plan and stores the
// new plan. It returns the changed page numbers and the page numbers the
// run no longer produces.
func (m *Manager) Sync(ctx context.Context, site, category string, windows []pagination.Window) (changed, removed []int, err error) {
	plan, err := PlanFromWindows(windows)
	if err != nil {
		return nil, nil, fmt.Errorf("build plan: %w", err)
	}

	key := PlanKey{Site: site, Category: category}
	prev, err := m.previous(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if err := m.Set(ctx, key, &plan); err != nil {
		return nil, nil, err
	}
	return Changed(prev, plan), Removed(prev, plan), nil
}

// previous returns the stored plan, or an empty plan when there is none
// or it cannot be decoded.
func (m *Manager) previous(ctx context.Context, key PlanKey) (Plan, error) {
	prev, err := m.Get(ctx, key)
	switch {
	case errors.Is(err, ErrCacheMiss), errors.Is(err, ErrInvalidPlan):
		return Plan{}, nil
	case err != nil:
		return Plan{}, err
	}
	return *prev, nil
}
