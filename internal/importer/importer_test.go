package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSVFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSVStripsBOM(t *testing.T) {
	path := writeCSVFile(t, "\ufeffName,Total Editions\nCowes Race Day,50\n")

	table, err := readCSV(path)
	require.NoError(t, err)
	require.Len(t, table.rows, 1)

	assert.Equal(t, "Cowes Race Day", table.get(table.rows[0], "Name"))
	assert.Equal(t, "50", table.get(table.rows[0], "Total Editions"))
}

func TestReadCSVRaggedRows(t *testing.T) {
	path := writeCSVFile(t, "Name,Notes,Web Link\nShort Row\nFull Row,note,https://example.com\n")

	table, err := readCSV(path)
	require.NoError(t, err)
	require.Len(t, table.rows, 2)

	assert.Equal(t, "", table.get(table.rows[0], "Notes"))
	assert.Equal(t, "https://example.com", table.get(table.rows[1], "Web Link"))
	assert.Equal(t, "", table.get(table.rows[0], "Missing Column"))
}
