package ports

import (
	"context"
	"errors"
	"io"
	"time"

	"backlog-reporter/internal/features/backlog/domain"
)

// ErrReportNotFound is returned by ReportStore.Get when no report exists
// under the id, either because none was uploaded or it expired.
var ErrReportNotFound = errors.New("report not found")

// SheetParser turns an uploaded tabular blob into a column-labeled table.
type SheetParser interface {
	// Parse reads the first sheet of the blob. The first row is the header.
	Parse(r io.Reader) (*domain.Table, error)
}

// ReportStore keeps one computed report per upload session.
type ReportStore interface {
	// Save stores a report under the given id for the given lifetime.
	Save(ctx context.Context, id string, report *domain.Report, ttl time.Duration) error
	// Get retrieves a previously stored report, or ErrReportNotFound.
	Get(ctx context.Context, id string) (*domain.Report, error)
}
