package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/einhellcentralasia/public-price-stock/internal/graph"
	"github.com/einhellcentralasia/public-price-stock/internal/table"
	"github.com/einhellcentralasia/public-price-stock/internal/workbook"
)

// TableSource fetches the raw source table for one run.
type TableSource interface {
	Fetch(ctx context.Context) (*table.Table, error)
}

// SourceMode selects how the table is read from the workbook.
type SourceMode string

const (
	// SourceAuto reads via the workbook table API and falls back to
	// downloading the file when that fails. This is the default.
	SourceAuto SourceMode = "auto"
	// SourceTable only uses the workbook table API.
	SourceTable SourceMode = "table"
	// SourceDownload always downloads the .xlsx and parses it locally.
	SourceDownload SourceMode = "download"
)

// ParseSourceMode validates a -source flag value.
func ParseSourceMode(s string) (SourceMode, error) {
	switch SourceMode(s) {
	case SourceAuto, SourceTable, SourceDownload:
		return SourceMode(s), nil
	default:
		return "", fmt.Errorf("invalid source mode %q (want auto, table or download)", s)
	}
}

// GraphSource fetches the table from SharePoint via Microsoft Graph. The
// workbook table API is the primary path; large or session-locked workbooks
// sometimes refuse it, in which case the raw file is downloaded and the
// named table extracted locally.
type GraphSource struct {
	client    *graph.Client
	tableName string
	mode      SourceMode
}

// NewGraphSource creates a source over a Graph client.
func NewGraphSource(client *graph.Client, tableName string, mode SourceMode) *GraphSource {
	return &GraphSource{client: client, tableName: tableName, mode: mode}
}

// Fetch resolves the workbook and reads the table.
func (s *GraphSource) Fetch(ctx context.Context) (*table.Table, error) {
	siteID, err := s.client.ResolveSiteID(ctx)
	if err != nil {
		return nil, err
	}

	itemID, err := s.client.ResolveItemID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	if s.mode != SourceDownload {
		t, err := s.client.ReadTable(ctx, siteID, itemID)
		if err == nil {
			return t, nil
		}
		if s.mode == SourceTable {
			return nil, err
		}
		slog.Warn("Workbook table API failed, falling back to download",
			slog.String("error", err.Error()))
	}

	data, err := s.client.DownloadWorkbook(ctx, siteID, itemID)
	if err != nil {
		return nil, err
	}
	return workbook.ReadTable(data, s.tableName)
}
