package schema

import "npmfootprint/internal/estimator"

// Stats of one package as reported by the upstream sources
type Stats struct {
	Downloads *int64
	SizeBytes *int64
}

// Row model of a package footprint; Err is set instead of data on failure
type Row struct {
	Package   Package
	Stats     Stats
	Footprint *estimator.WeeklyReport
	Err       string
}

// Failed reports whether the row carries an error marker
func (r Row) Failed() bool {
	return r.Err != ""
}
