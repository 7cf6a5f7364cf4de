package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"npmfootprint/internal/estimator"
	"npmfootprint/internal/schema"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML configuration.
//
//	packages:
//	  - react
//	  - "@babel/core@7.24.0"
//	gridIntensities:
//	  dataCenter: 50
//	  network: 437.26
//	  device: 437.26
//	  production: 437.26
//	contributions:
//	  dataCenter: 14
//	  network: 14
//	  device: 53
//	  production: 19
type File struct {
	Packages        []string           `yaml:"packages"`
	GridIntensities map[string]float64 `yaml:"gridIntensities"`
	Contributions   map[string]float64 `yaml:"contributions"`
}

// LoadFile reads and decodes a YAML config file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &f, nil
}

// PackageList parses every package spec of the file.
func (f *File) PackageList() ([]schema.Package, error) {
	return ParsePackages(f.Packages)
}

// EstimatorConfig returns the table overrides, validated against each other.
// A table missing from the file is taken from the defaults. Supplied
// contributions must add up to 100.
// It returns nil when the file overrides nothing.
func (f *File) EstimatorConfig() (*estimator.Config, error) {
	if f == nil || (f.GridIntensities == nil && f.Contributions == nil) {
		return nil, nil
	}

	grid := estimator.DefaultGridIntensities()
	if f.GridIntensities != nil {
		grid = estimator.Table(f.GridIntensities)
	}
	contrib := estimator.DefaultContributions()
	if f.Contributions != nil {
		contrib = estimator.Table(f.Contributions)
	}
	validate := estimator.ValidateKeys
	if f.Contributions != nil {
		validate = estimator.ValidateTables
	}
	if err := validate(grid, contrib); err != nil {
		return nil, fmt.Errorf("invalid tables: %w", err)
	}
	return &estimator.Config{GridIntensities: grid, Contributions: contrib}, nil
}

// ParsePackages parses package specs, reporting every invalid one.
func ParsePackages(specs []string) ([]schema.Package, error) {
	packages := make([]schema.Package, 0, len(specs))
	var errs []error
	for _, spec := range specs {
		pkg, err := schema.ParsePackage(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		packages = append(packages, pkg)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return packages, nil
}
