package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/doc"
	"github.com/dgallion1/pdfoutline/internal/layout"
)

// Failure records one skipped document for batch diagnostics.
type Failure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Summary is the outcome of a batch run.
type Summary struct {
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	Failures  []Failure `json:"failures,omitempty"`
}

// AllFailed reports whether not a single document succeeded. Only then
// does the whole run exit non-zero; partial batches stay usable.
func (s Summary) AllFailed() bool {
	return s.Failed > 0 && s.Processed == 0
}

// Runner fans a batch of PDFs out over a bounded worker pool. Workers
// share nothing but the queue and the output directory; each document's
// JSON lands atomically as a distinct file.
type Runner struct {
	cfg  config.Config
	proc *Processor
	log  *slog.Logger

	mu      sync.Mutex
	summary Summary
}

func NewRunner(cfg config.Config, proc *Processor, log *slog.Logger) *Runner {
	return &Runner{cfg: cfg, proc: proc, log: log}
}

// Run discovers every PDF under the input directory and processes them in
// parallel. It returns an error only for setup problems (unreadable input
// directory, output directory creation); per-document failures are
// collected into the Summary instead.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	files, err := discover(r.cfg.InputDir)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		r.log.Warn("no PDF files found", "dir", r.cfg.InputDir)
		return Summary{}, nil
	}
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	queue := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				r.ProcessFile(path)
			}
		}()
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return r.snapshot(), ctx.Err()
		case queue <- path:
		}
	}
	close(queue)
	wg.Wait()

	s := r.snapshot()
	r.log.Info("batch complete", "processed", s.Processed, "failed", s.Failed)
	return s, nil
}

// ProcessFile runs one document end to end and records the outcome. A
// fatal extraction error skips the document without producing output; it
// never aborts the batch.
func (r *Runner) ProcessFile(path string) {
	result, err := r.proc.Process(path)
	if err != nil {
		reason := err.Error()
		var exErr *layout.ExtractionError
		if errors.As(err, &exErr) {
			reason = exErr.Reason
		}
		r.log.Error("document skipped", "file", filepath.Base(path), "reason", reason)
		r.record(func(s *Summary) {
			s.Failed++
			s.Failures = append(s.Failures, Failure{File: filepath.Base(path), Reason: reason})
		})
		return
	}

	out := r.outputPath(path)
	if err := writeJSON(out, result); err != nil {
		r.log.Error("write failed", "file", filepath.Base(path), "error", err)
		r.record(func(s *Summary) {
			s.Failed++
			s.Failures = append(s.Failures, Failure{File: filepath.Base(path), Reason: err.Error()})
		})
		return
	}
	r.record(func(s *Summary) { s.Processed++ })
}

func (r *Runner) outputPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(r.cfg.OutputDir, stem+".json")
}

func (r *Runner) record(fn func(*Summary)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.summary)
}

func (r *Runner) snapshot() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.summary
	s.Failures = append([]Failure(nil), r.summary.Failures...)
	sort.Slice(s.Failures, func(i, j int) bool { return s.Failures[i].File < s.Failures[j].File })
	return s
}

// discover lists *.pdf files directly under dir, sorted so repeated runs
// visit documents in the same order.
func discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// writeJSON writes the result to path atomically: encode into a temp file
// in the same directory, then rename over the destination. Readers never
// observe a partial document.
func writeJSON(path string, result doc.Result) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pdfoutline-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
