package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// LatestTag is the dist-tag used when a package spec has no version
const LatestTag = "latest"

// Package npm package identity
type Package struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// String returns name@version
func (p Package) String() string {
	return p.Name + "@" + p.VersionOrLatest()
}

// VersionOrLatest returns the version, falling back to the latest dist-tag
func (p Package) VersionOrLatest() string {
	if p.Version == "" {
		return LatestTag
	}
	return p.Version
}

// ParsePackage parses "name", "name@version", "@scope/name" and "@scope/name@version"
func ParsePackage(spec string) (Package, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Package{}, errors.New("empty package spec")
	}

	name, version := spec, ""
	// a leading @ belongs to the scope
	if i := strings.LastIndex(spec, "@"); i > 0 {
		if i == len(spec)-1 {
			return Package{}, fmt.Errorf("package spec %q has an empty version", spec)
		}
		name, version = spec[:i], spec[i+1:]
	}

	pkg := Package{Name: name, Version: version}
	if err := pkg.Validate(); err != nil {
		return Package{}, err
	}
	return pkg, nil
}

// Validate checks the name and, unless it is a dist-tag, the semver version
func (p Package) Validate() error {
	if p.Name == "" || p.Name == "@" {
		return errors.New("missing package name")
	}
	if strings.HasPrefix(p.Name, "@") && !strings.Contains(p.Name, "/") {
		return fmt.Errorf("scoped package %q has no name", p.Name)
	}
	if p.Version == "" || isDistTag(p.Version) {
		return nil
	}
	if _, err := semver.StrictNewVersion(p.Version); err != nil {
		return fmt.Errorf("package %s: invalid version %q: %w", p.Name, p.Version, err)
	}
	return nil
}

func isDistTag(v string) bool {
	switch v {
	case LatestTag, "next", "beta", "canary":
		return true
	}
	return false
}
