// Package export writes the collected tables and the analytics report to
// CSV files, an analytics JSON document, and optionally a SQLite database.
package export

import (
	"github.com/unikom-riset/bibliometrics/internal/domain"
)

// Exporter persists collection output. ExportTables runs at every
// checkpoint and again at the end; ExportAnalytics runs once at the end.
type Exporter interface {
	ExportTables(tables *domain.Tables) error
	ExportAnalytics(report *domain.Analytics) error
}

// Multi fans out to several exporters in order, stopping at the first
// failure.
type Multi []Exporter

func (m Multi) ExportTables(tables *domain.Tables) error {
	for _, e := range m {
		if err := e.ExportTables(tables); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) ExportAnalytics(report *domain.Analytics) error {
	for _, e := range m {
		if err := e.ExportAnalytics(report); err != nil {
			return err
		}
	}
	return nil
}
