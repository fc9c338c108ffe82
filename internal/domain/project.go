package domain

import (
	"fmt"
	"strings"
)

// Sheet column labels for the Projects tab.
const (
	ColumnProjectID   = "Project ID"
	ColumnProjectName = "Project Name"
)

// Project is a validated row from the Projects sheet. ClientSheetID references
// the owning client by its sheet identifier and must resolve against the
// target store before the project is written.
type Project struct {
	SheetID       string
	ClientSheetID string
	Name          string
	Status        string
}

// NormalizeProjectStatus maps the free-form sheet status into the snake_case
// form stored in the target schema.
func NormalizeProjectStatus(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	return normalized
}

// ParseProjectRow validates and converts a raw sheet row into a Project.
// Project ID, Client ID and Project Name are required.
func ParseProjectRow(row map[string]string) (Project, error) {
	sheetID := strings.TrimSpace(row[ColumnProjectID])
	if sheetID == "" {
		return Project{}, fmt.Errorf("missing required field %q", ColumnProjectID)
	}

	clientSheetID := strings.TrimSpace(row[ColumnClientID])
	if clientSheetID == "" {
		return Project{}, fmt.Errorf("missing required field %q", ColumnClientID)
	}

	name := strings.TrimSpace(row[ColumnProjectName])
	if name == "" {
		return Project{}, fmt.Errorf("missing required field %q", ColumnProjectName)
	}

	return Project{
		SheetID:       sheetID,
		ClientSheetID: clientSheetID,
		Name:          name,
		Status:        NormalizeProjectStatus(row[ColumnStatus]),
	}, nil
}
