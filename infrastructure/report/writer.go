package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
)

// Writer stores results and attachments in a results directory. A Writer
// with an empty directory only logs.
type Writer struct {
	dir    string
	logger *logrus.Logger
}

var _ interfaces.ResultStore = (*Writer)(nil)

// NewWriter - creates a writer for dir
func NewWriter(dir string, logger *logrus.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Enabled reports whether results are written to disk.
func (w *Writer) Enabled() bool {
	return w != nil && w.dir != ""
}

// Dir returns the results directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write - saves the result as <uuid>-result.json
func (w *Writer) Write(r *Result) error {
	w.logger.WithFields(logrus.Fields{
		"test":   r.FullName,
		"status": r.Status,
		"steps":  len(r.Steps),
	}).Info("test finished")

	if !w.Enabled() {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	path := filepath.Join(w.dir, r.UUID+"-result.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// Attach - saves data as an attachment file and returns its reference.
// Without a results directory nothing is written and ok is false.
func (w *Writer) Attach(name, mimeType string, data []byte) (att Attachment, ok bool, err error) {
	if !w.Enabled() {
		return Attachment{}, false, nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Attachment{}, false, fmt.Errorf("failed to create results directory: %w", err)
	}

	source := uuid.NewString() + "-attachment" + extension(mimeType)
	if err := os.WriteFile(filepath.Join(w.dir, source), data, 0o644); err != nil {
		return Attachment{}, false, fmt.Errorf("failed to write attachment: %w", err)
	}
	return Attachment{Name: name, Source: source, Type: mimeType}, true, nil
}

// Load - reads back every result in the results directory, oldest first.
// A missing directory yields no results.
func (w *Writer) Load() ([]*Result, error) {
	if !w.Enabled() {
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(w.dir, "*-result.json"))
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read result: %w", err)
		}
		var r Result
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(f), err)
		}
		results = append(results, &r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Start < results[j].Start
	})
	return results, nil
}

// SaveScenario - stores a scenario run as a result file
func (w *Writer) SaveScenario(result entities.ScenarioResult) error {
	return w.Write(FromScenario(result))
}

func extension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	case "text/plain":
		return ".txt"
	case "application/json":
		return ".json"
	case "text/html":
		return ".html"
	default:
		return ""
	}
}
