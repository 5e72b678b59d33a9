package exporter

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einhellcentralasia/public-price-stock/internal/table"
)

func TestXMLWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "public_price_stock.xml")

	tbl, err := table.New(
		[]string{"Name", "Stock", "Unit Price", "updatedAt"},
		[][]string{
			{"Widget", "<10", "10", "01.01.2024 00:00"},
			{"Gadget & Co", ">50", "25", "01.01.2024 00:00"},
		},
	)
	require.NoError(t, err)

	require.NoError(t, NewXMLWriter().Write(path, tbl))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.True(t, strings.HasPrefix(text, xml.Header), "missing XML declaration")
	// Column names with spaces are sanitized into valid element names.
	assert.Contains(t, text, "<Unit_Price>10</Unit_Price>")
	// Values are escaped, bucket labels included.
	assert.Contains(t, text, "<Name>Gadget &amp; Co</Name>")
	assert.Contains(t, text, "<Stock>&lt;10</Stock>")
	assert.Contains(t, text, "<updatedAt>01.01.2024 00:00</updatedAt>")

	// The artifact must parse back: one item per row, one field per column.
	type item struct {
		Name      string `xml:"Name"`
		Stock     string `xml:"Stock"`
		UnitPrice string `xml:"Unit_Price"`
		UpdatedAt string `xml:"updatedAt"`
	}
	var doc struct {
		Items []item `xml:"item"`
	}
	require.NoError(t, xml.Unmarshal(content, &doc))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, item{Name: "Widget", Stock: "<10", UnitPrice: "10", UpdatedAt: "01.01.2024 00:00"}, doc.Items[0])
	assert.Equal(t, ">50", doc.Items[1].Stock)
}

func TestXMLWriter_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xml")

	tbl, err := table.New([]string{"Name"}, nil)
	require.NoError(t, err)

	require.NoError(t, NewXMLWriter().Write(path, tbl))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<items>")
}

func TestXMLWriter_RoundTripPreservesAllColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")

	headers := []string{"Article No.", "Name", "Stock", "Price (EUR)", "updatedAt"}
	tbl, err := table.New(headers, [][]string{
		{"4006825-1", "Widget", "0", "10,99", "01.01.2024 00:00"},
	})
	require.NoError(t, err)

	require.NoError(t, NewXMLWriter().Write(path, tbl))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, h := range headers {
		tag := table.SanitizeTag(h)
		assert.Contains(t, string(content), "<"+tag+">", "column %q missing from artifact", h)
	}
}
