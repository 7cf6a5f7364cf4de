package main

import (
	"bytes"
	"context"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	footprintv1dto "npmfootprint/internal/dto/footprint_v1_dto"
	"npmfootprint/internal/env"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var popular = []footprintv1dto.Package{
	{Name: "react"},
	{Name: "react", Version: "18.2.0"},
	{Name: "react-dom"},
	{Name: "lodash", Version: "4.17.21"},
	{Name: "express"},
	{Name: "axios"},
	{Name: "chalk"},
	{Name: "typescript"},
	{Name: "@babel/core"},
	{Name: "@types/node"},
	{Name: "moment", Version: "2.29.4"},
	{Name: "missing-package"},
}

func generateRandomPayload(maxPackages int) ([]byte, error) {
	n := rand.Intn(maxPackages) + 1
	packages := make([]footprintv1dto.Package, n)
	for i := range packages {
		packages[i] = popular[rand.Intn(len(popular))]
	}
	return json.Marshal(footprintv1dto.PackagesRequest{Packages: packages})
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func main() {
	env.LoadEnv()
	if needTest := os.Getenv("NEED_TEST"); needTest != "true" {
		return
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	url := "http://localhost:8080/api/v1/footprint"
	concurrency := flag.Int("concurrency", 20, "Number of concurrent workers")
	duration := flag.Duration("duration", 5*time.Second, "Duration of the load test")
	maxPackages := flag.Int("maxPackages", 10, "Maximum number of packages in a payload")
	flag.Parse()

	if envURL := os.Getenv("TARGET_URL"); envURL != "" {
		url = envURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	log.Info().
		Str("target", url).
		Int("concurrency", *concurrency).
		Dur("duration", *duration).
		Msg("Starting load test")

	startTime := time.Now()
	var (
		wg        sync.WaitGroup
		non2xx    atomic.Int64
		latencies []time.Duration
		latMu     sync.Mutex
	)

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{}
			for ctx.Err() == nil {
				payload, err := generateRandomPayload(*maxPackages)
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Msg("Error generating payload")
					continue
				}

				req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Msg("Error creating request")
					continue
				}
				req.Header.Set("Content-Type", "application/json")

				reqStart := time.Now()
				resp, err := client.Do(req)
				latency := time.Since(reqStart)

				if err != nil {
					if ctx.Err() == nil {
						log.Error().Err(err).Int("worker", workerID).Msg("Error sending request")
					}
					continue
				}
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					non2xx.Add(1)
				}

				latMu.Lock()
				latencies = append(latencies, latency)
				latMu.Unlock()
			}
		}(i)
	}

	wg.Wait()

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		log.Info().
			Str("50th_percentile", percentile(latencies, 0.5).String()).
			Str("99th_percentile", percentile(latencies, 0.99).String()).
			Msg("Latency percentiles")
	}

	totalTime := time.Since(startTime).Seconds()
	log.Info().
		Int("total_requests", len(latencies)).
		Int64("non_200", non2xx.Load()).
		Float64("rps", float64(len(latencies))/totalTime).
		Msg("Load test completed")
}
