package registry_dto

// DownloadsResponse body of the npm downloads point api
type DownloadsResponse struct {
	Downloads int64  `json:"downloads"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Package   string `json:"package"`
	Error     string `json:"error,omitempty"`
}

// SizeResponse body of the package size api
type SizeResponse struct {
	Name    string     `json:"name"`
	Version string     `json:"version"`
	Size    int64      `json:"size"`
	Gzip    int64      `json:"gzip"`
	Error   *SizeError `json:"error,omitempty"`
}

// SizeError error body of the package size api
type SizeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
