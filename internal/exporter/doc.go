// Package exporter publishes the transformed price/stock table as the CSV
// and XML artifacts served from the static hosting directory, and houses
// the freshness gate that decides whether a scheduled run does any work at
// all.
//
// Both writers replace their artifact atomically (write to a temp sibling,
// then rename), so a failed run never leaves a partial file behind and the
// hosting layer never serves one.
package exporter
