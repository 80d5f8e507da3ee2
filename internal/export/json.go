package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unikom-riset/bibliometrics/internal/domain"
)

// FileAnalytics is the analytics JSON document name.
const FileAnalytics = "ANALISIS_LENGKAP.json"

// JSONExporter writes the analytics report as an indented JSON document.
// Tables are covered by the CSV and SQLite exporters, so ExportTables is a
// no-op here.
type JSONExporter struct {
	dir string
}

// NewJSONExporter creates a JSON exporter writing into dir.
func NewJSONExporter(dir string) *JSONExporter {
	return &JSONExporter{dir: dir}
}

func (e *JSONExporter) ExportTables(*domain.Tables) error {
	return nil
}

func (e *JSONExporter) ExportAnalytics(report *domain.Analytics) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analytics: %w", err)
	}

	path := filepath.Join(e.dir, FileAnalytics)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileAnalytics, err)
	}
	return nil
}
