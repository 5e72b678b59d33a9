package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/einhellcentralasia/public-price-stock/internal/config"
	"github.com/einhellcentralasia/public-price-stock/internal/exporter"
	"github.com/einhellcentralasia/public-price-stock/internal/table"
)

// Result summarizes one run.
type Result struct {
	Skipped   bool
	Rows      int
	UpdatedAt string
	CSVPath   string
	XMLPath   string
}

// Runner executes one fetch-transform-write pass. The whole pipeline is a
// single sequential pass: one blocking fetch, one in-place transform, two
// artifact writes.
type Runner struct {
	export config.ExportConfig
	source TableSource
	gate   *exporter.Gate
	csv    *exporter.CSVWriter
	xml    *exporter.XMLWriter

	// now is swappable for tests.
	now func() time.Time
}

// NewRunner wires a runner from configuration and a table source. The XML
// artifact dates the last successful run for the gate: both artifacts are
// written together, and XML is the one the original publication always had.
func NewRunner(export config.ExportConfig, source TableSource) *Runner {
	return &Runner{
		export: export,
		source: source,
		gate:   exporter.NewGate(export.XMLPath(), export.MaxAge),
		csv:    exporter.NewCSVWriter(),
		xml:    exporter.NewXMLWriter(),
		now:    time.Now,
	}
}

// Run executes one pass. When the gate holds, nothing is fetched and the
// artifacts stay untouched. Any failure aborts the run before the first
// artifact rename, so previous outputs survive intact.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if !r.gate.ShouldRun() {
		return &Result{Skipped: true}, nil
	}

	t, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	updatedAt := table.Timestamp(r.now(), r.export.Location())
	table.Transform(t, updatedAt)

	csvPath := r.export.CSVPath()
	if err := r.csv.Write(csvPath, t); err != nil {
		return nil, fmt.Errorf("CSV export failed: %w", err)
	}

	xmlPath := r.export.XMLPath()
	if err := r.xml.Write(xmlPath, t); err != nil {
		return nil, fmt.Errorf("XML export failed: %w", err)
	}

	slog.Info("Run complete",
		slog.Int("rows", t.RowCount()),
		slog.String("updated_at", updatedAt),
		slog.String("csv", csvPath),
		slog.String("xml", xmlPath))

	return &Result{
		Rows:      t.RowCount(),
		UpdatedAt: updatedAt,
		CSVPath:   csvPath,
		XMLPath:   xmlPath,
	}, nil
}

// DisableGate forces the next run regardless of artifact age.
func (r *Runner) DisableGate() {
	r.gate.MaxAge = 0
}
