package domain

import (
	"fmt"
	"strings"
)

// ClientStatus enumerates the lifecycle states a client can be in.
type ClientStatus string

const (
	ClientStatusIntake    ClientStatus = "intake"
	ClientStatusActive    ClientStatus = "active"
	ClientStatusOnHold    ClientStatus = "on_hold"
	ClientStatusCompleted ClientStatus = "completed"
	ClientStatusArchived  ClientStatus = "archived"
)

// Sheet column labels for the Clients tab.
const (
	ColumnClientID = "Client ID"
	ColumnFullName = "Full Name"
	ColumnEmail    = "Email"
	ColumnStatus   = "Status"
)

// Client is a validated row from the Clients sheet, ready to be upserted.
type Client struct {
	SheetID  string
	FullName string
	Email    string
	Status   ClientStatus
}

// ParseClientStatus normalizes a free-form sheet status into the fixed
// enumeration. Empty or unrecognized values map to intake, the initial state.
func ParseClientStatus(raw string) ClientStatus {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch ClientStatus(normalized) {
	case ClientStatusIntake, ClientStatusActive, ClientStatusOnHold, ClientStatusCompleted, ClientStatusArchived:
		return ClientStatus(normalized)
	default:
		return ClientStatusIntake
	}
}

// ParseClientRow validates and converts a raw sheet row into a Client.
// Client ID and Full Name are required; a missing value is reported as an
// error so the caller can skip the row.
func ParseClientRow(row map[string]string) (Client, error) {
	sheetID := strings.TrimSpace(row[ColumnClientID])
	if sheetID == "" {
		return Client{}, fmt.Errorf("missing required field %q", ColumnClientID)
	}

	fullName := strings.TrimSpace(row[ColumnFullName])
	if fullName == "" {
		return Client{}, fmt.Errorf("missing required field %q", ColumnFullName)
	}

	return Client{
		SheetID:  sheetID,
		FullName: fullName,
		Email:    strings.TrimSpace(row[ColumnEmail]),
		Status:   ParseClientStatus(row[ColumnStatus]),
	}, nil
}
