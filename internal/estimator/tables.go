package estimator

import (
	"fmt"
	"math"
	"sort"
)

const contributionTolerance = 1e-9

// Table maps a stack category to a value. It is used both for grid
// intensities (g CO2e/kWh) and contribution shares (percent).
type Table map[string]float64

// DefaultGridIntensities returns a fresh copy of the built-in grid intensities.
func DefaultGridIntensities() Table {
	return Table{
		CategoryDataCenter: DataCenterGridIntensity,
		CategoryNetwork:    GlobalGridIntensity,
		CategoryDevice:     GlobalGridIntensity,
		CategoryProduction: GlobalGridIntensity,
	}
}

// DefaultContributions returns a fresh copy of the built-in contribution shares.
func DefaultContributions() Table {
	return Table{
		CategoryDataCenter: DataCenterContribution,
		CategoryNetwork:    NetworkContribution,
		CategoryDevice:     DeviceContribution,
		CategoryProduction: ProductionContribution,
	}
}

// NewContributionTable copies shares into a Table after checking that they sum to 100.
func NewContributionTable(shares map[string]float64) (Table, error) {
	if len(shares) == 0 {
		return nil, ErrEmptyTable
	}
	if err := Table(shares).checkFinite(); err != nil {
		return nil, err
	}
	table := make(Table, len(shares))
	var sum float64
	for k, v := range shares {
		table[k] = v
		sum += v
	}
	if !(math.Abs(sum-ContributionTotal) <= contributionTolerance) {
		return nil, fmt.Errorf("%w: got %g", ErrContributionSum, sum)
	}
	return table, nil
}

// Clone returns a copy of t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Categories returns the table keys in sorted order.
func (t Table) Categories() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateTables checks that both tables carry the same categories and that
// contributions sum to 100.
func ValidateTables(gridIntensities, contributions Table) error {
	if err := ValidateKeys(gridIntensities, contributions); err != nil {
		return err
	}
	_, err := NewContributionTable(contributions)
	return err
}

// ValidateKeys checks that both tables carry the same categories and only
// finite values.
func ValidateKeys(gridIntensities, contributions Table) error {
	if len(gridIntensities) == 0 || len(contributions) == 0 {
		return ErrEmptyTable
	}
	if err := gridIntensities.checkFinite(); err != nil {
		return err
	}
	if err := contributions.checkFinite(); err != nil {
		return err
	}
	if len(gridIntensities) != len(contributions) {
		return fmt.Errorf("%w: %v vs %v", ErrTableKeys, gridIntensities.Categories(), contributions.Categories())
	}
	for k := range gridIntensities {
		if _, ok := contributions[k]; !ok {
			return fmt.Errorf("%w: %q has no contribution", ErrTableKeys, k)
		}
	}
	return nil
}

func (t Table) checkFinite() error {
	for _, k := range t.Categories() {
		if v := t[k]; math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %g", ErrNonFinite, k, v)
		}
	}
	return nil
}
