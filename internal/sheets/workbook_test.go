package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", ClientsTab))
	require.NoError(t, f.SetSheetRow(ClientsTab, "A1", &[]any{"Client ID", "Full Name", "Email", "Status"}))
	require.NoError(t, f.SetSheetRow(ClientsTab, "A2", &[]any{"C-001", "Ada Mason", "ada@example.com", "Active"}))
	// Fully empty rows are dropped, short rows padded.
	require.NoError(t, f.SetSheetRow(ClientsTab, "A4", &[]any{"C-002", "Ben Ortiz"}))

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestWorkbookReaderReadsClientsTab(t *testing.T) {
	reader, err := NewWorkbookReader(writeTestWorkbook(t))
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	rows, err := reader.GetClientsData(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ada Mason", rows[0]["Full Name"])
	assert.Equal(t, "Active", rows[0]["Status"])
	assert.Equal(t, "C-002", rows[1]["Client ID"])
	assert.Equal(t, "", rows[1]["Status"])
}

func TestWorkbookReaderMissingTab(t *testing.T) {
	reader, err := NewWorkbookReader(writeTestWorkbook(t))
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	_, err = reader.GetProjectsData(context.Background())
	assert.Error(t, err)
}

func TestRowsFromRecords(t *testing.T) {
	rows, err := rowsFromRecords([][]string{
		{"", ""},
		{"Client ID", " Full Name "},
		{" C-001 ", "Ada Mason"},
		{""},
		{"C-002"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "C-001", rows[0]["Client ID"])
	assert.Equal(t, "Ada Mason", rows[0]["Full Name"])
	assert.Equal(t, "", rows[1]["Full Name"])

	_, err = rowsFromRecords(nil)
	assert.Error(t, err)
}
