package adapters

import (
	"errors"
	"fmt"
	"io"

	"backlog-reporter/internal/features/backlog/domain"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrInvalidWorkbook is returned when the upload is not a readable xlsx
	// workbook.
	ErrInvalidWorkbook = errors.New("invalid workbook")
	// ErrEmptySheet is returned when the uploaded workbook has no header row.
	ErrEmptySheet = errors.New("sheet has no header row")
)

// ExcelParser reads the first sheet of an xlsx upload into a domain.Table.
// Both feeds are exported from spreadsheet tools, so every cell comes back
// as a string and is typed later by the normalizer.
type ExcelParser struct{}

// NewExcelParser creates an ExcelParser.
func NewExcelParser() *ExcelParser {
	return &ExcelParser{}
}

// Parse implements ports.SheetParser.
func (p *ExcelParser) Parse(r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	return &domain.Table{
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}
