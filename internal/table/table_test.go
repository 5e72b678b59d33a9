package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		rows        [][]string
		expectError bool
	}{
		{
			name:    "valid table",
			headers: []string{"Name", "Stock", "Price"},
			rows: [][]string{
				{"Widget", "3", "10"},
				{"Gadget", "0", "25"},
			},
		},
		{
			name:    "empty body",
			headers: []string{"Name"},
			rows:    nil,
		},
		{
			name:        "no headers",
			headers:     nil,
			rows:        [][]string{{"Widget"}},
			expectError: true,
		},
		{
			name:        "ragged row",
			headers:     []string{"Name", "Stock"},
			rows:        [][]string{{"Widget", "3"}, {"Gadget"}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(tt.headers, tt.rows)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, tbl.Rows, len(tt.rows))
		})
	}
}

func TestNew_TrimsHeaders(t *testing.T) {
	tbl, err := New([]string{" Name ", "Stock  "}, [][]string{{"Widget", "3"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Stock"}, tbl.Headers)
}

func TestColumnIndex(t *testing.T) {
	tbl, err := New([]string{"Name", "Stock", "Price"}, nil)
	require.NoError(t, err)

	idx, ok := tbl.ColumnIndex("stock")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = tbl.ColumnIndex("Quantity")
	assert.False(t, ok)
}

func TestAppendColumn(t *testing.T) {
	tbl, err := New([]string{"Name"}, [][]string{{"Widget"}, {"Gadget"}})
	require.NoError(t, err)

	tbl.AppendColumn("updatedAt", "01.01.2024 00:00")

	assert.Equal(t, []string{"Name", "updatedAt"}, tbl.Headers)
	for _, row := range tbl.Rows {
		assert.Equal(t, "01.01.2024 00:00", row[1])
	}
}
