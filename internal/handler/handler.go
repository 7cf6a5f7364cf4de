package handler

import (
	"context"
	"net/http"
	"time"

	footprintv1dto "npmfootprint/internal/dto/footprint_v1_dto"
	"npmfootprint/internal/report"
	"npmfootprint/internal/schema"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	reporter       footprintReporter
	requestTimeout time.Duration
	now            func() time.Time
}

func New(reporter footprintReporter, timeout time.Duration) *Handler {
	return &Handler{
		reporter:       reporter,
		requestTimeout: timeout,
		now:            time.Now,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var request footprintv1dto.PackagesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := request.Validate(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	packages, err := toModel(request.Packages)
	if err != nil {
		http.Error(w, "Invalid package: "+err.Error(), http.StatusBadRequest)
		return
	}

	window := schema.LastWeek(h.now())
	if request.Start != "" {
		window, err = schema.ParseWindow(request.Start, request.End)
		if err != nil {
			http.Error(w, "Invalid window: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	runID := report.NewRunID()
	reqStart := time.Now()
	doc := h.reporter.Report(ctx, runID, packages, window)
	latency := time.Since(reqStart)

	log.Info().
		Str("runId", runID).
		Int("packages", len(doc.Packages)).
		Int("failed", doc.Failed()).
		Str("latency", latency.String()).
		Msg("footprint report")

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Error().Err(err).Msg("couldn't encode a response")
	}
}

func toModel(packages []footprintv1dto.Package) ([]schema.Package, error) {
	result := make([]schema.Package, 0, len(packages))
	for _, p := range packages {
		pkg := schema.Package{Name: p.Name, Version: p.Version}
		if err := pkg.Validate(); err != nil {
			return nil, err
		}
		result = append(result, pkg)
	}
	return result, nil
}
