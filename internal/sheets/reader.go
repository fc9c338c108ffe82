// Package sheets reads the legacy spreadsheet that the migration converts
// into the relational schema. Each entity lives on its own tab and is read
// with a single bulk call; rows come back in sheet order.
package sheets

import (
	"context"
	"errors"
	"strings"
)

// Tab names, one per migrated entity.
const (
	ClientsTab  = "Clients"
	ProjectsTab = "Projects"
	PermitsTab  = "Permits"
	PaymentsTab = "Payments"
)

// Row is one spreadsheet record keyed by the trimmed header label
// (e.g. "Client ID", "Full Name").
type Row map[string]string

// Reader exposes one bulk read per entity tab. Implementations must return
// rows in a stable, deterministic order; a read failure is fatal for the
// calling entity pass.
type Reader interface {
	GetClientsData(ctx context.Context) ([]Row, error)
	GetProjectsData(ctx context.Context) ([]Row, error)
	GetPermitsData(ctx context.Context) ([]Row, error)
	GetPaymentsData(ctx context.Context) ([]Row, error)
}

// rowsFromRecords converts raw cell records into Rows. The first non-empty
// record is the header; fully empty records are dropped, short records are
// padded so every header has a value.
func rowsFromRecords(records [][]string) ([]Row, error) {
	var headers []string
	var rows []Row

	for _, record := range records {
		if isEmptyRecord(record) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(record))
			for i, cell := range record {
				headers[i] = strings.TrimSpace(cell)
			}
			continue
		}

		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	if headers == nil {
		return nil, errors.New("no header row detected")
	}
	return rows, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
