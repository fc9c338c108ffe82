package domain

import (
	"fmt"
	"strings"
	"time"
)

// Sheet column labels for the Permits tab.
const (
	ColumnPermitID     = "Permit ID"
	ColumnPermitNumber = "Permit Number"
	ColumnApprovedBy   = "Approved By"
	ColumnApprovalDate = "Approval Date"
)

var approvalDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Permit is a validated row from the Permits sheet, including the workflow
// metadata (approver, approval timestamp) added as the sheet evolved.
type Permit struct {
	SheetID        string
	ProjectSheetID string
	PermitNumber   string
	Status         string
	ApprovedBy     string
	ApprovedAt     *time.Time
}

// ParsePermitRow validates and converts a raw sheet row into a Permit.
// Permit ID, Project ID and Permit Number are required; approval metadata is
// optional but an unparseable approval date fails the row rather than being
// silently dropped.
func ParsePermitRow(row map[string]string) (Permit, error) {
	sheetID := strings.TrimSpace(row[ColumnPermitID])
	if sheetID == "" {
		return Permit{}, fmt.Errorf("missing required field %q", ColumnPermitID)
	}

	projectSheetID := strings.TrimSpace(row[ColumnProjectID])
	if projectSheetID == "" {
		return Permit{}, fmt.Errorf("missing required field %q", ColumnProjectID)
	}

	permitNumber := strings.TrimSpace(row[ColumnPermitNumber])
	if permitNumber == "" {
		return Permit{}, fmt.Errorf("missing required field %q", ColumnPermitNumber)
	}

	permit := Permit{
		SheetID:        sheetID,
		ProjectSheetID: projectSheetID,
		PermitNumber:   permitNumber,
		Status:         NormalizeProjectStatus(row[ColumnStatus]),
		ApprovedBy:     strings.TrimSpace(row[ColumnApprovedBy]),
	}

	if raw := strings.TrimSpace(row[ColumnApprovalDate]); raw != "" {
		approvedAt, err := parseSheetDate(raw)
		if err != nil {
			return Permit{}, fmt.Errorf("invalid %q value %q", ColumnApprovalDate, raw)
		}
		permit.ApprovedAt = &approvedAt
	}

	return permit, nil
}

func parseSheetDate(raw string) (time.Time, error) {
	for _, layout := range approvalDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", raw)
}
