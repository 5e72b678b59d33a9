package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einhellcentralasia/public-price-stock/internal/table"
)

func testTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		[]string{"Name", "Stock", "Price", "updatedAt"},
		[][]string{
			{"Widget", "<10", "10", "01.01.2024 00:00"},
			{"Gadget, large", ">50", "25", "01.01.2024 00:00"},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestCSVWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "public_price_stock.csv")
	writer := NewCSVWriter()
	writer.BOMPrefix = false

	require.NoError(t, writer.Write(path, testTable(t)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Stock,Price,updatedAt", lines[0])
	assert.Equal(t, "Widget,<10,10,01.01.2024 00:00", lines[1])
	// Values containing commas must be quoted.
	assert.Equal(t, `"Gadget, large",>50,25,01.01.2024 00:00`, lines[2])
}

func TestCSVWriter_BOMPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, NewCSVWriter().Write(path, testTable(t)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, content[:3])
	assert.True(t, strings.HasPrefix(string(content[3:]), "Name,Stock,Price,updatedAt"))
}

func TestCSVWriter_OverwritesPreviousArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	writer := NewCSVWriter()
	writer.BOMPrefix = false

	require.NoError(t, writer.Write(path, testTable(t)))

	next, err := table.New([]string{"Name"}, [][]string{{"OnlyOne"}})
	require.NoError(t, err)
	require.NoError(t, writer.Write(path, next))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name\nOnlyOne\n", string(content))
}

func TestWriteAtomic_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	require.NoError(t, NewCSVWriter().Write(path, testTable(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestWriteAtomic_FailureKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	err := writeAtomic(path, func(*os.File) error {
		return assert.AnError
	})
	require.Error(t, err)

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(content))

	entries, readDirErr := os.ReadDir(dir)
	require.NoError(t, readDirErr)
	assert.Len(t, entries, 1)
}
