package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"backlog-reporter/internal/core/logger"
	"backlog-reporter/internal/features/backlog/domain"
	"backlog-reporter/internal/features/backlog/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BacklogService runs the one-shot transform over the two uploaded feeds and
// keeps the result addressable for the session lifetime.
type BacklogService struct {
	parser     ports.SheetParser
	store      ports.ReportStore
	normalizer *domain.Normalizer
	engine     *domain.RulesEngine
	composer   *domain.Composer
	ttl        time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewBacklogService wires the transform pipeline. loc is the fixed report
// zone; every timestamp parse and every "now" is anchored to it. nowFn may be
// nil, in which case wall-clock time is used; tests inject a pinned instant.
func NewBacklogService(
	parser ports.SheetParser,
	store ports.ReportStore,
	codes domain.ChannelCodes,
	loc *time.Location,
	ttl time.Duration,
	nowFn func() time.Time,
) *BacklogService {
	classifier := domain.NewChannelClassifier(codes)
	if nowFn == nil {
		nowFn = time.Now
	}
	return &BacklogService{
		parser:     parser,
		store:      store,
		normalizer: domain.NewNormalizer(loc),
		engine:     domain.NewRulesEngine(classifier),
		composer:   domain.NewComposer(classifier),
		ttl:        ttl,
		now:        func() time.Time { return nowFn().In(loc) },
		logger:     logger.Get(),
	}
}

// Process ingests the export and inside feeds, runs the full transform, and
// stores the resulting report. It returns the report id the caller should
// hand back on export requests. Either both result tables are produced or
// the whole upload is rejected; there is no partial-result mode.
func (s *BacklogService) Process(ctx context.Context, exportFeed, insideFeed io.Reader) (string, error) {
	exportTable, err := s.parser.Parse(exportFeed)
	if err != nil {
		return "", fmt.Errorf("failed to parse export feed: %w", err)
	}
	insideTable, err := s.parser.Parse(insideFeed)
	if err != nil {
		return "", fmt.Errorf("failed to parse inside feed: %w", err)
	}

	merged, err := s.normalizer.Normalize(exportTable, insideTable)
	if err != nil {
		return "", fmt.Errorf("failed to normalize feeds: %w", err)
	}

	now := s.now()
	categorized := s.engine.Categorize(merged, now)
	backlog := s.composer.Compose(categorized, now)
	inventory := domain.DeriveInventory(backlog, now)

	report := &domain.Report{
		GeneratedAt: now,
		Backlog:     backlog,
		Inventory:   inventory,
	}

	id := uuid.NewString()
	if err := s.store.Save(ctx, id, report, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info("Report computed",
		zap.String("report_id", id),
		zap.Int("merged_records", len(merged)),
		zap.Int("backlog_rows", len(backlog)),
		zap.Int("inventory_rows", len(inventory)),
	)

	return id, nil
}

// Backlog returns the stored backlog table for a report id.
func (s *BacklogService) Backlog(ctx context.Context, id string) ([]domain.ComposedRecord, error) {
	report, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return report.Backlog, nil
}

// Inventory returns the stored inventory table for a report id.
func (s *BacklogService) Inventory(ctx context.Context, id string) ([]domain.InventoryRecord, error) {
	report, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return report.Inventory, nil
}
