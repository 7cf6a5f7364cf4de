package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// Sink receives a finished document.
type Sink interface {
	Write(ctx context.Context, doc Document) error
}

// Marshal encodes a document as JSON indented with two spaces.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("err during marshaling of a report: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a JSON document.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("err during unmarshaling of a report: %w", err)
	}
	return doc, nil
}

// FileSink writes the document as pretty-printed JSON to Path.
type FileSink struct {
	Path string
}

func (s FileSink) Write(_ context.Context, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", s.Path, err)
	}
	return nil
}

type documentStore interface {
	Set(ctx context.Context, key string, value Document, expiration time.Duration) error
}

// RedisSink stores the JSON document under Key.
type RedisSink struct {
	Store documentStore
	Key   string
	TTL   time.Duration
}

func (s RedisSink) Write(ctx context.Context, doc Document) error {
	if err := s.Store.Set(ctx, s.Key, doc, s.TTL); err != nil {
		return fmt.Errorf("store report under %s: %w", s.Key, err)
	}
	return nil
}

// MultiSink writes to every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, doc Document) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
