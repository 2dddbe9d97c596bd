package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backlog-reporter/internal/core/cache"
	"backlog-reporter/internal/features/backlog/domain"
	"backlog-reporter/internal/features/backlog/ports"
)

// reportKeyPrefix namespaces report keys in the shared cache.
const reportKeyPrefix = "report:"

// RedisReportStore persists computed reports as JSON in the cache layer,
// one per upload session.
type RedisReportStore struct {
	cache cache.Cache
}

// NewRedisReportStore creates a report store over the given cache.
func NewRedisReportStore(c cache.Cache) *RedisReportStore {
	return &RedisReportStore{cache: c}
}

// Save implements ports.ReportStore.
func (s *RedisReportStore) Save(ctx context.Context, id string, report *domain.Report, ttl time.Duration) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := s.cache.Set(ctx, reportKeyPrefix+id, payload, ttl); err != nil {
		return fmt.Errorf("failed to store report %s: %w", id, err)
	}
	return nil
}

// Get implements ports.ReportStore.
func (s *RedisReportStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	payload, err := s.cache.Get(ctx, reportKeyPrefix+id)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, fmt.Errorf("%w: %s", ports.ErrReportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report %s: %w", id, err)
	}

	var report domain.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &report, nil
}
