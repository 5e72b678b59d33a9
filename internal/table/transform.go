package table

import (
	"log/slog"
	"time"
)

// StockColumn is the column rewritten into bucket labels.
const StockColumn = "Stock"

// UpdatedAtColumn is appended to every published row.
const UpdatedAtColumn = "updatedAt"

// TimestampLayout is the publication timestamp format, dd.mm.yyyy hh:mm.
const TimestampLayout = "02.01.2006 15:04"

// Timestamp formats the run timestamp in the publication zone. The zone is
// fixed (the consumers are in UTC+05:00) so the output never depends on the
// host locale.
func Timestamp(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(TimestampLayout)
}

// Transform rewrites the table in place for publication: the Stock column
// becomes bucket labels and every row gains the shared updatedAt value.
// A missing Stock column is tolerated with a warning so a renamed source
// column degrades to an unbucketed export instead of an outage.
func Transform(t *Table, updatedAt string) {
	if idx, ok := t.ColumnIndex(StockColumn); ok {
		for _, row := range t.Rows {
			row[idx] = BucketStock(row[idx])
		}
	} else {
		slog.Warn("Stock column not found, no bucketing applied",
			slog.Any("headers", t.Headers))
	}

	t.AppendColumn(UpdatedAtColumn, updatedAt)
}
