package sheets

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookReader reads entity tabs from an exported .xlsx workbook, for
// offline and dry runs against a snapshot of the spreadsheet.
type WorkbookReader struct {
	file *excelize.File
}

// NewWorkbookReader opens the workbook at path. The caller owns the reader
// and must Close it when the run ends.
func NewWorkbookReader(path string) (*WorkbookReader, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &WorkbookReader{file: file}, nil
}

// Close releases the underlying workbook handle.
func (r *WorkbookReader) Close() error {
	return r.file.Close()
}

func (r *WorkbookReader) GetClientsData(ctx context.Context) ([]Row, error) {
	return r.readTab(ctx, ClientsTab)
}

func (r *WorkbookReader) GetProjectsData(ctx context.Context) ([]Row, error) {
	return r.readTab(ctx, ProjectsTab)
}

func (r *WorkbookReader) GetPermitsData(ctx context.Context) ([]Row, error) {
	return r.readTab(ctx, PermitsTab)
}

func (r *WorkbookReader) GetPaymentsData(ctx context.Context) ([]Row, error) {
	return r.readTab(ctx, PaymentsTab)
}

func (r *WorkbookReader) readTab(ctx context.Context, tab string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := r.file.GetRows(tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read tab %s: %w", tab, err)
	}

	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("tab %s: %w", tab, err)
	}
	return rows, nil
}

var _ Reader = (*WorkbookReader)(nil)
