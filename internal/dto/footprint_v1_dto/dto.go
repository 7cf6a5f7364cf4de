package footprintv1dto

import "errors"

// PackagesRequest dto of footprintV1 api
type PackagesRequest struct {
	Packages []Package `json:"packages"`
	Start    string    `json:"start,omitempty"`
	End      string    `json:"end,omitempty"`
}

// Package name with optional version
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Validate validation of request
func (r PackagesRequest) Validate() error {
	if len(r.Packages) == 0 {
		return errors.New("wrong request, missed packages")
	}
	if (r.Start == "") != (r.End == "") {
		return errors.New("wrong request, start and end must be set together")
	}
	return nil
}
