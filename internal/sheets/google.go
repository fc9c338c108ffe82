package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleSheetsReader reads entity tabs from a live Google Sheets spreadsheet.
// Reads go through the Sheets API values endpoint, which is rate limited
// upstream; that is one reason passes run strictly sequentially.
type GoogleSheetsReader struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleSheetsReader builds a read-only Sheets API client from a service
// account credentials file.
func NewGoogleSheetsReader(ctx context.Context, spreadsheetID, credentialsFile string) (*GoogleSheetsReader, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &GoogleSheetsReader{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (r *GoogleSheetsReader) GetClientsData(ctx context.Context) ([]Row, error) {
	return r.readTab(ctx, ClientsTab)
}

func (r *GoogleSheetsReader) GetProjectsData(ctx context.Context) ([]Row, error) {
	return r.readTab(ctx, ProjectsTab)
}

func (r *GoogleSheetsReader) GetPermitsData(ctx context.Context) ([]Row, error) {
	return r.readTab(ctx, PermitsTab)
}

func (r *GoogleSheetsReader) GetPaymentsData(ctx context.Context) ([]Row, error) {
	return r.readTab(ctx, PaymentsTab)
}

func (r *GoogleSheetsReader) readTab(ctx context.Context, tab string) ([]Row, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read tab %s: %w", tab, err)
	}

	records := make([][]string, 0, len(resp.Values))
	for _, cells := range resp.Values {
		record := make([]string, len(cells))
		for i, cell := range cells {
			record[i] = fmt.Sprint(cell)
		}
		records = append(records, record)
	}

	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("tab %s: %w", tab, err)
	}
	return rows, nil
}

var _ Reader = (*GoogleSheetsReader)(nil)
