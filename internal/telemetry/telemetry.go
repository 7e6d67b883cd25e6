// Package telemetry persists the one-record-per-search tuple the engine
// surfaces after every completed or aborted search.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Outcome classifies how a search ended.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeError    Outcome = "error"
)

// Record is the telemetry tuple of spec.md §4.5, plus the strategy that
// produced it — carried on the in-process record for the HTTP layer but
// not written as its own CSV column, since the Metrics Sink file format
// is fixed at five columns.
type Record struct {
	Start           string
	Finish          string
	ElapsedSeconds  float64
	DiscoveredCount int
	DepthReached    int
	Outcome         Outcome
	Strategy        string
}

// Sink persists one Record per completed or aborted search.
type Sink interface {
	Record(r Record) error
}

// NullSink discards every record; useful in tests and for searches run
// without metrics persistence configured.
type NullSink struct{}

func (NullSink) Record(Record) error { return nil }

// CSVSink appends rows to a CSV file with header
// start_page,finish_page,elapsed_time,discovered_pages_count,depth_reached,
// matching the original implementation's log_performance_metrics format
// exactly. Safe for concurrent use.
type CSVSink struct {
	mu   sync.Mutex
	path string
	file *os.File
	w    *csv.Writer
}

var csvHeader = []string{"start_page", "finish_page", "elapsed_time", "discovered_pages_count", "depth_reached"}

// NewCSVSink opens (creating if necessary) path for append, writing the
// header only if the file is new.
func NewCSVSink(path string) (*CSVSink, error) {
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening metrics file %q: %w", path, err)
	}

	sink := &CSVSink{path: path, file: f, w: csv.NewWriter(f)}

	if needsHeader {
		if err := sink.w.Write(csvHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing metrics header: %w", err)
		}
		sink.w.Flush()
		if err := sink.w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flushing metrics header: %w", err)
		}
	}

	return sink, nil
}

// Record appends one row and flushes immediately so a crash doesn't lose
// completed searches.
func (s *CSVSink) Record(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := []string{
		r.Start,
		r.Finish,
		strconv.FormatFloat(r.ElapsedSeconds, 'f', 4, 64),
		strconv.Itoa(r.DiscoveredCount),
		strconv.Itoa(r.DepthReached),
	}

	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("writing metrics row: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("flushing metrics row: %w", err)
	}
	return nil
}

// Close releases the underlying file handle.
func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
