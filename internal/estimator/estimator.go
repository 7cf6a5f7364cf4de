package estimator

import "math"

// EmissionsEstimate is the footprint of downloadCount transfers of one payload.
// ConsumedKWh is the energy of a single transfer.
type EmissionsEstimate struct {
	TotalCo2EmissionsWeekKg float64 `json:"totalCo2EmissionsWeekKg"`
	ConsumedKWh             float64 `json:"consumedkWh"`
}

// WeeklyReport is the rounded weekly footprint across all downloads.
type WeeklyReport struct {
	ConsumedKWh float64 `json:"consumedkWh" yaml:"consumedkWh"`
	Kg          float64 `json:"kg" yaml:"kg"`
	T           float64 `json:"t" yaml:"t"`
}

// Config holds the tables used by an Estimator. Nil tables fall back to defaults.
type Config struct {
	GridIntensities Table
	Contributions   Table
}

// Estimator applies the transfer-emissions model with a fixed pair of tables.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	gridIntensities Table
	contributions   Table
	co2PerGb        float64
}

// New creates an estimator. Tables are copied and not validated; use
// ValidateTables beforehand when the input comes from users.
func New(cfg *Config) *Estimator {
	grid := DefaultGridIntensities()
	contrib := DefaultContributions()
	if cfg != nil {
		if cfg.GridIntensities != nil {
			grid = cfg.GridIntensities.Clone()
		}
		if cfg.Contributions != nil {
			contrib = cfg.Contributions.Clone()
		}
	}
	return &Estimator{
		gridIntensities: grid,
		contributions:   contrib,
		co2PerGb:        blendedCo2PerGb(grid, contrib),
	}
}

var defaultEstimator = New(nil)

// Default returns the estimator built from the default tables.
func Default() *Estimator { return defaultEstimator }

// EstimateSingleTransfer estimates with the default tables.
func EstimateSingleTransfer(sizeKb, downloadCount float64) EmissionsEstimate {
	return defaultEstimator.EstimateSingleTransfer(sizeKb, downloadCount)
}

// WeeklyReportFor builds a weekly report with the default tables.
func WeeklyReportFor(sizeKb, downloadsLastWeek float64) WeeklyReport {
	return defaultEstimator.WeeklyReport(sizeKb, downloadsLastWeek)
}

// blendedCo2PerGb sums intensity × share over the grid-intensity categories
// in sorted order. A category without a contribution weighs zero.
func blendedCo2PerGb(gridIntensities, contributions Table) float64 {
	var total float64
	for _, category := range gridIntensities.Categories() {
		total += gridIntensities[category] * (contributions[category] / 100)
	}
	return total
}

// TotalCo2PerGB returns the blended grams CO2e per gigabyte transferred.
func (e *Estimator) TotalCo2PerGB() float64 { return e.co2PerGb }

// GridIntensities returns a copy of the grid-intensity table.
func (e *Estimator) GridIntensities() Table { return e.gridIntensities.Clone() }

// Contributions returns a copy of the contribution table.
func (e *Estimator) Contributions() Table { return e.contributions.Clone() }

// EstimateSingleTransfer computes the weekly CO2 of downloadCount transfers of
// sizeKb kilobytes and the energy of one transfer.
//
//  1. sizeGb = sizeKb / 1,000,000
//  2. grams per transfer = sizeGb × blended gCO2e/GB
//  3. weekly kg = grams per transfer × downloadCount / 1000
//  4. kWh per transfer = sizeGb × 0.81
//
// Inputs are not validated; negative or non-finite values propagate.
func (e *Estimator) EstimateSingleTransfer(sizeKb, downloadCount float64) EmissionsEstimate {
	sizeGb := sizeKb / KbPerGb
	gramsPerTransfer := sizeGb * e.co2PerGb
	weeklyGrams := gramsPerTransfer * downloadCount

	return EmissionsEstimate{
		TotalCo2EmissionsWeekKg: weeklyGrams / GramsPerKg,
		ConsumedKWh:             sizeGb * KWhPerGB,
	}
}

// WeeklyReport scales the single-transfer energy by the weekly downloads and
// rounds for presentation.
func (e *Estimator) WeeklyReport(sizeKb, downloadsLastWeek float64) WeeklyReport {
	est := e.EstimateSingleTransfer(sizeKb, downloadsLastWeek)
	kg := Round(est.TotalCo2EmissionsWeekKg, 6)
	return WeeklyReport{
		ConsumedKWh: Round(est.ConsumedKWh*downloadsLastWeek, 6),
		Kg:          kg,
		T:           Round(kg/KgPerTonne, 2),
	}
}

// Finite returns r with NaN and infinite fields set to zero, ready for display
// and JSON encoding.
func (r WeeklyReport) Finite() WeeklyReport {
	return WeeklyReport{
		ConsumedKWh: zeroNonFinite(r.ConsumedKWh),
		Kg:          zeroNonFinite(r.Kg),
		T:           zeroNonFinite(r.T),
	}
}

// Sum adds weekly reports, treating NaN and infinite fields as zero, and re-rounds.
func Sum(reports ...WeeklyReport) WeeklyReport {
	var kwh, kg float64
	for _, r := range reports {
		r = r.Finite()
		kwh += r.ConsumedKWh
		kg += r.Kg
	}
	kg = Round(kg, 6)
	return WeeklyReport{
		ConsumedKWh: Round(kwh, 6),
		Kg:          kg,
		T:           Round(kg/KgPerTonne, 2),
	}
}

func zeroNonFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
