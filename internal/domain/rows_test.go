package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientRow(t *testing.T) {
	client, err := ParseClientRow(map[string]string{
		"Client ID": " C-001 ",
		"Full Name": "Ada Mason",
		"Email":     "ada@example.com",
		"Status":    "On Hold",
	})
	require.NoError(t, err)
	assert.Equal(t, "C-001", client.SheetID)
	assert.Equal(t, "Ada Mason", client.FullName)
	assert.Equal(t, ClientStatusOnHold, client.Status)
}

func TestParseClientRowMissingRequiredFields(t *testing.T) {
	_, err := ParseClientRow(map[string]string{"Full Name": "Ada Mason"})
	assert.ErrorContains(t, err, "Client ID")

	_, err = ParseClientRow(map[string]string{"Client ID": "C-001", "Full Name": "   "})
	assert.ErrorContains(t, err, "Full Name")
}

func TestParseClientStatus(t *testing.T) {
	cases := map[string]ClientStatus{
		"Active":    ClientStatusActive,
		"on-hold":   ClientStatusOnHold,
		"ON HOLD":   ClientStatusOnHold,
		"completed": ClientStatusCompleted,
		"Archived":  ClientStatusArchived,
		"":          ClientStatusIntake,
		"whatever":  ClientStatusIntake,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseClientStatus(raw), "status %q", raw)
	}
}

func TestParseProjectRow(t *testing.T) {
	project, err := ParseProjectRow(map[string]string{
		"Project ID":   "P-001",
		"Client ID":    "C-001",
		"Project Name": "Garage Addition",
		"Status":       "In Progress",
	})
	require.NoError(t, err)
	assert.Equal(t, "C-001", project.ClientSheetID)
	assert.Equal(t, "in_progress", project.Status)

	_, err = ParseProjectRow(map[string]string{
		"Project ID":   "P-002",
		"Project Name": "Fence",
	})
	assert.ErrorContains(t, err, "Client ID")
}

func TestParsePermitRow(t *testing.T) {
	permit, err := ParsePermitRow(map[string]string{
		"Permit ID":     "PM-001",
		"Project ID":    "P-001",
		"Permit Number": "BLD-2023-0042",
		"Status":        "Approved",
		"Approved By":   "J. Alvarez",
		"Approval Date": "2023-06-14",
	})
	require.NoError(t, err)
	require.NotNil(t, permit.ApprovedAt)
	assert.Equal(t, 2023, permit.ApprovedAt.Year())
	assert.Equal(t, "approved", permit.Status)

	// Approval metadata is optional.
	permit, err = ParsePermitRow(map[string]string{
		"Permit ID":     "PM-002",
		"Project ID":    "P-001",
		"Permit Number": "BLD-2023-0043",
	})
	require.NoError(t, err)
	assert.Nil(t, permit.ApprovedAt)

	// An unparseable date fails the row instead of being dropped.
	_, err = ParsePermitRow(map[string]string{
		"Permit ID":     "PM-003",
		"Project ID":    "P-001",
		"Permit Number": "BLD-2023-0044",
		"Approval Date": "next tuesday",
	})
	assert.ErrorContains(t, err, "Approval Date")
}

func TestParsePaymentRow(t *testing.T) {
	payment, err := ParsePaymentRow(map[string]string{
		"Payment ID":            "PAY-001",
		"Project ID":            "P-001",
		"Client ID":             "C-001",
		"Amount":                "$1,250.00",
		"Payment Date":          "2023-07-01",
		"QuickBooks Invoice ID": "QB-8821",
	})
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, "QB-8821", payment.QuickBooksID)
	require.NotNil(t, payment.PaidAt)

	_, err = ParsePaymentRow(map[string]string{
		"Payment ID": "PAY-002",
		"Project ID": "P-001",
	})
	assert.ErrorContains(t, err, "Amount")

	_, err = ParsePaymentRow(map[string]string{
		"Payment ID": "PAY-003",
		"Project ID": "P-001",
		"Amount":     "twelve",
	})
	assert.ErrorContains(t, err, "Amount")
}
