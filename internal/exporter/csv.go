package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/einhellcentralasia/public-price-stock/internal/table"
)

// CSVWriter publishes a table as a CSV artifact.
type CSVWriter struct {
	// BOMPrefix adds a UTF-8 BOM so Excel opens the file correctly.
	BOMPrefix bool
}

// NewCSVWriter creates a CSV writer. BOM is on by default because the main
// consumers open the artifact in Excel.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{BOMPrefix: true}
}

// Write publishes the table to filePath: header row first, then one line
// per data row. The file is written to a temp sibling and renamed into
// place so the hosting layer never serves a half-written artifact.
func (w *CSVWriter) Write(filePath string, t *table.Table) error {
	slog.Info("Writing CSV artifact",
		slog.String("path", filePath),
		slog.Int("rows", t.RowCount()))

	return writeAtomic(filePath, func(file *os.File) error {
		if w.BOMPrefix {
			if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
				return fmt.Errorf("failed to write BOM: %w", err)
			}
		}

		writer := csv.NewWriter(file)
		if err := writer.Write(t.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
		for i, record := range t.Rows {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}
		writer.Flush()
		return writer.Error()
	})
}

// writeAtomic runs fill against a temp file in the target directory, then
// renames it over filePath. On any failure the existing artifact is left
// untouched.
func writeAtomic(filePath string, fill func(*os.File) error) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filePath, err)
	}
	return nil
}
