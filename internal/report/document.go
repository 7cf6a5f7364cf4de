// Package report builds the aggregated footprint document and writes it to sinks.
package report

import (
	"time"

	"npmfootprint/internal/estimator"
	"npmfootprint/internal/schema"

	"github.com/google/uuid"
)

// Document is the flat JSON report of one run.
type Document struct {
	RunID       string                 `json:"runId"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Start       string                 `json:"start"`
	End         string                 `json:"end"`
	Total       estimator.WeeklyReport `json:"total"`
	Packages    []Entry                `json:"packages"`
}

// Entry is one package of the report. Data fields are null when Error is set.
type Entry struct {
	Name      string                  `json:"name"`
	Version   string                  `json:"version"`
	Downloads *int64                  `json:"downloads"`
	SizeBytes *int64                  `json:"sizeBytes"`
	Footprint *estimator.WeeklyReport `json:"footprint"`
	Error     string                  `json:"error,omitempty"`
}

// NewRunID returns a random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// New aggregates rows into a document. The total only covers rows without an error.
// Non-finite footprint values are reported as zero.
func New(runID string, window schema.Window, rows []schema.Row, now time.Time) Document {
	entries := make([]Entry, 0, len(rows))
	footprints := make([]estimator.WeeklyReport, 0, len(rows))

	for _, row := range rows {
		var footprint *estimator.WeeklyReport
		if row.Footprint != nil {
			finite := row.Footprint.Finite()
			footprint = &finite
		}
		entries = append(entries, Entry{
			Name:      row.Package.Name,
			Version:   row.Package.VersionOrLatest(),
			Downloads: row.Stats.Downloads,
			SizeBytes: row.Stats.SizeBytes,
			Footprint: footprint,
			Error:     row.Err,
		})
		if !row.Failed() && footprint != nil {
			footprints = append(footprints, *footprint)
		}
	}

	return Document{
		RunID:       runID,
		GeneratedAt: now.UTC(),
		Start:       window.StartDate(),
		End:         window.EndDate(),
		Total:       estimator.Sum(footprints...),
		Packages:    entries,
	}
}

// Failed counts entries with an error marker.
func (d Document) Failed() int {
	n := 0
	for _, e := range d.Packages {
		if e.Error != "" {
			n++
		}
	}
	return n
}
