package main

import (
	"flag"
	"hash/fnv"
	"net/http"
	"os"
	"strings"
	"time"

	"npmfootprint/internal/dto/registry_dto"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// unknownPrefix marks packages the mock answers with 404
const unknownPrefix = "missing-"

type mock struct {
	delay time.Duration
}

// seed gives every package stable numbers across runs
func seed(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

// downloadsHandler serves /downloads/point/{start}:{end}/{package}
func (m *mock) downloadsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/downloads/point/")
	period, pkg, ok := strings.Cut(rest, "/")
	start, end, okPeriod := strings.Cut(period, ":")
	if !ok || !okPeriod || pkg == "" {
		m.writeJSON(w, http.StatusBadRequest, registry_dto.DownloadsResponse{Error: "invalid period or package"})
		return
	}
	time.Sleep(m.delay)

	if strings.HasPrefix(pkg, unknownPrefix) {
		m.writeJSON(w, http.StatusNotFound, registry_dto.DownloadsResponse{Error: "package " + pkg + " not found"})
		return
	}

	m.writeJSON(w, http.StatusOK, registry_dto.DownloadsResponse{
		Downloads: int64(seed(pkg)%50_000_000) + 1_000,
		Start:     start,
		End:       end,
		Package:   pkg,
	})
}

// sizeHandler serves /size?package={name}@{version}
func (m *mock) sizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	spec := r.URL.Query().Get("package")
	i := strings.LastIndex(spec, "@")
	if i <= 0 {
		m.writeJSON(w, http.StatusBadRequest, errorBody("InvalidPackageSpec", "expected name@version"))
		return
	}
	name, version := spec[:i], spec[i+1:]
	time.Sleep(m.delay)

	if strings.HasPrefix(name, unknownPrefix) {
		m.writeJSON(w, http.StatusNotFound, errorBody("PackageNotFoundError", "package "+name+" not found"))
		return
	}

	size := int64(seed(spec)%2_000_000) + 500
	m.writeJSON(w, http.StatusOK, registry_dto.SizeResponse{
		Name:    name,
		Version: version,
		Size:    size,
		Gzip:    size / 3,
	})
}

func errorBody(code, message string) registry_dto.SizeResponse {
	return registry_dto.SizeResponse{Error: &registry_dto.SizeError{Code: code, Message: message}}
}

func (m *mock) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("couldn't encode a response")
	}
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	addr := flag.String("addr", ":8081", "listen address")
	delay := flag.Duration("delay", 300*time.Millisecond, "artificial latency of every response")
	flag.Parse()

	m := &mock{delay: *delay}
	mux := http.NewServeMux()
	mux.HandleFunc("/downloads/point/", m.downloadsHandler)
	mux.HandleFunc("/size", m.sizeHandler)

	log.Info().
		Str("addr", *addr).
		Str("downloads", "/downloads/point/{start}:{end}/{package}").
		Str("size", "/size?package={name}@{version}").
		Msg("Mock registry running")
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal().Err(err).Msg("Mock registry crashed")
	}
}
