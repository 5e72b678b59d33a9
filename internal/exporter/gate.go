package exporter

import (
	"log/slog"
	"os"
	"time"
)

// Gate is the freshness check that turns redundant scheduled runs into
// no-ops. The external trigger fires more often than the data changes; the
// gate compares the age of the last published artifact against MaxAge and
// skips the whole fetch/write cycle while it is still fresh.
type Gate struct {
	// ArtifactPath is the reference artifact whose mtime dates the last
	// successful run.
	ArtifactPath string
	MaxAge       time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewGate creates a gate over the given artifact.
func NewGate(artifactPath string, maxAge time.Duration) *Gate {
	return &Gate{ArtifactPath: artifactPath, MaxAge: maxAge, now: time.Now}
}

// ShouldRun reports whether a run should proceed. A missing artifact or a
// stat failure opens the gate: with nothing to compare against, running is
// the safe answer.
func (g *Gate) ShouldRun() bool {
	if g.MaxAge <= 0 {
		return true
	}

	info, err := os.Stat(g.ArtifactPath)
	if err != nil {
		slog.Info("No previous artifact, gate open",
			slog.String("path", g.ArtifactPath))
		return true
	}

	age := g.now().Sub(info.ModTime())
	if age < g.MaxAge {
		slog.Info("Artifact still fresh, skipping run",
			slog.String("path", g.ArtifactPath),
			slog.Duration("age", age),
			slog.Duration("max_age", g.MaxAge))
		return false
	}

	slog.Info("Artifact expired, gate open",
		slog.String("path", g.ArtifactPath),
		slog.Duration("age", age),
		slog.Duration("max_age", g.MaxAge))
	return true
}
