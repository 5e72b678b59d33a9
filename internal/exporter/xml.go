package exporter

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"

	"github.com/einhellcentralasia/public-price-stock/internal/table"
)

// XMLWriter publishes a table as an XML artifact: one <item> element per
// row, one child element per column. Column names pass through
// table.SanitizeTag so workbook headers with spaces stay addressable in
// Power Query.
type XMLWriter struct{}

// NewXMLWriter creates an XML writer.
func NewXMLWriter() *XMLWriter {
	return &XMLWriter{}
}

// Write publishes the table to filePath with the same temp-and-rename
// replacement as the CSV artifact.
func (w *XMLWriter) Write(filePath string, t *table.Table) error {
	slog.Info("Writing XML artifact",
		slog.String("path", filePath),
		slog.Int("rows", t.RowCount()))

	tags := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		tags[i] = table.SanitizeTag(h)
	}

	return writeAtomic(filePath, func(file *os.File) error {
		if _, err := file.WriteString(xml.Header); err != nil {
			return fmt.Errorf("failed to write XML declaration: %w", err)
		}

		enc := xml.NewEncoder(file)
		enc.Indent("", "  ")

		root := xml.StartElement{Name: xml.Name{Local: "items"}}
		if err := enc.EncodeToken(root); err != nil {
			return fmt.Errorf("failed to open items element: %w", err)
		}

		for i, row := range t.Rows {
			item := xml.StartElement{Name: xml.Name{Local: "item"}}
			if err := enc.EncodeToken(item); err != nil {
				return fmt.Errorf("failed to open item %d: %w", i, err)
			}

			for j, value := range row {
				field := xml.StartElement{Name: xml.Name{Local: tags[j]}}
				if err := enc.EncodeElement(value, field); err != nil {
					return fmt.Errorf("failed to write field %s of item %d: %w", tags[j], i, err)
				}
			}

			if err := enc.EncodeToken(item.End()); err != nil {
				return fmt.Errorf("failed to close item %d: %w", i, err)
			}
		}

		if err := enc.EncodeToken(root.End()); err != nil {
			return fmt.Errorf("failed to close items element: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush XML encoder: %w", err)
		}

		// Trailing newline so the artifact diffs cleanly in hosting.
		_, err := file.WriteString("\n")
		return err
	})
}
