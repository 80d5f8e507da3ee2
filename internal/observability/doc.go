// Package observability provides structured logging for the bibliometric
// collector.
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("run_id", runID).Msg("collection started")
//
// Add run context to a logger:
//
//	logger = observability.WithRunContext(logger, runID, mode)
//
// # Standard Fields
//
// Common fields used across the collector:
//
//   - run_id: collection run identifier
//   - mode: run mode (test, sample, production)
//   - author_key: derived author key
//   - source: upstream source (openalex, crossref, doaj, doi_pages)
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
