package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rlmesh/rlmesh/logging"
)

// ScalarWriter records named scalar metrics keyed by tag and step index.
// Implementations must tolerate interleaved tags and non-monotonic steps.
type ScalarWriter interface {
	// WriteScalar records value under tag at the given step.
	WriteScalar(tag string, value float64, step int) error

	// Flush forces buffered records to their backing store.
	Flush() error

	// Close flushes and releases resources. The writer is unusable afterwards.
	Close() error
}

// Noop discards all scalars. Useful for tests or when metrics are disabled.
type Noop struct{}

// WriteScalar discards the record.
func (Noop) WriteScalar(string, float64, int) error { return nil }

// Flush is a no-op.
func (Noop) Flush() error { return nil }

// Close is a no-op.
func (Noop) Close() error { return nil }

// CSVWriter appends scalars to a scalars.csv file inside an experiment
// directory. Rows are (step, tag, value). It is safe for concurrent use.
type CSVWriter struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// NewCSVWriter creates the experiment directory if needed and opens (or
// appends to) its scalars.csv file.
func NewCSVWriter(experimentDir string) (*CSVWriter, error) {
	if err := os.MkdirAll(experimentDir, 0o755); err != nil {
		return nil, fmt.Errorf("create experiment dir: %w", err)
	}
	path := filepath.Join(experimentDir, "scalars.csv")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open scalar file: %w", err)
	}
	return &CSVWriter{file: f, w: csv.NewWriter(f)}, nil
}

// WriteScalar appends a (step, tag, value) row.
func (c *CSVWriter) WriteScalar(tag string, value float64, step int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write([]string{
		strconv.Itoa(step),
		tag,
		strconv.FormatFloat(value, 'g', -1, 64),
	})
}

// Flush writes buffered rows to disk.
func (c *CSVWriter) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.Flush()
	return c.w.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}

// SlogWriter emits each scalar as a structured log record. Handy during
// development when no metrics backend is wired up.
type SlogWriter struct {
	logger logging.Logger
}

// NewSlogWriter wraps a logging.Logger as a ScalarWriter.
func NewSlogWriter(logger logging.Logger) *SlogWriter {
	return &SlogWriter{logger: logger}
}

// WriteScalar logs the record at info level.
func (s *SlogWriter) WriteScalar(tag string, value float64, step int) error {
	s.logger.Info("scalar", "tag", tag, "value", value, "step", step)
	return nil
}

// Flush is a no-op.
func (s *SlogWriter) Flush() error { return nil }

// Close is a no-op.
func (s *SlogWriter) Close() error { return nil }

// MultiWriter fans out every record to all wrapped writers, stopping at the
// first error.
type MultiWriter struct {
	writers []ScalarWriter
}

// NewMultiWriter wraps the provided writers.
func NewMultiWriter(writers ...ScalarWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteScalar forwards the record to every writer.
func (m *MultiWriter) WriteScalar(tag string, value float64, step int) error {
	for _, w := range m.writers {
		if err := w.WriteScalar(tag, value, step); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer.
func (m *MultiWriter) Flush() error {
	for _, w := range m.writers {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer, returning the first error encountered.
func (m *MultiWriter) Close() error {
	var firstErr error
	for _, w := range m.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Recorder is an in-memory ScalarWriter that captures records for assertions.
type Recorder struct {
	mu      sync.Mutex
	Records []Record
}

// Record is a single captured scalar.
type Record struct {
	Tag   string
	Value float64
	Step  int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// WriteScalar captures the record.
func (r *Recorder) WriteScalar(tag string, value float64, step int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = append(r.Records, Record{Tag: tag, Value: value, Step: step})
	return nil
}

// Flush is a no-op.
func (r *Recorder) Flush() error { return nil }

// Close is a no-op.
func (r *Recorder) Close() error { return nil }

// ByTag returns the captured records for a tag in write order.
func (r *Recorder) ByTag(tag string) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Record
	for _, rec := range r.Records {
		if rec.Tag == tag {
			out = append(out, rec)
		}
	}
	return out
}
