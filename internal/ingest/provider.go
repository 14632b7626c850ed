// Package ingest holds what history importers share.
package ingest

// Result holds the outcome of an import.
type Result struct {
	SessionsReceived int `json:"sessions_received"`
	SessionsInserted int `json:"sessions_inserted"`
	SessionsSkipped  int `json:"sessions_skipped"`
	SessionsDropped  int `json:"sessions_dropped,omitempty"`

	SetsReceived int `json:"sets_received"`
	SetsDropped  int `json:"sets_dropped"`

	DryRun  bool   `json:"dry_run,omitempty"`
	Message string `json:"message,omitempty"`
}
