// Package estimator converts a transferred payload size and a transfer count
// into an estimated energy consumption and CO2 footprint.
package estimator

// Stack categories shared by the grid-intensity and contribution tables.
const (
	CategoryDataCenter = "dataCenter"
	CategoryNetwork    = "network"
	CategoryDevice     = "device"
	CategoryProduction = "production"
)

// Grid intensities in grams CO2e per kWh.
const (
	// DataCenterGridIntensity is the intensity of renewable-heavy hyperscale datacenters.
	DataCenterGridIntensity = 50.0

	// GlobalGridIntensity is the global average grid intensity, used for every
	// part of the stack outside the datacenter.
	GlobalGridIntensity = 437.26
)

// Contribution shares in percent of total energy use. The built-in shares add
// up to 101; tables supplied by users must add up to ContributionTotal.
const (
	DataCenterContribution = 15.0
	NetworkContribution    = 14.0
	DeviceContribution     = 53.0
	ProductionContribution = 19.0
)

const (
	// KWhPerGB is total internet energy use divided by total global data
	// transfer, in kWh per gigabyte.
	KWhPerGB = 0.81

	// KbPerGb converts kilobytes to gigabytes.
	KbPerGb = 1_000_000

	// GramsPerKg converts grams to kilograms.
	GramsPerKg = 1000.0

	// KgPerTonne converts kilograms to metric tonnes.
	KgPerTonne = 1000.0

	// ContributionTotal is the sum every contribution table must reach.
	ContributionTotal = 100.0
)
