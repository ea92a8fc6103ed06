package stores

import "time"

// RunStatus represents the outcome of a conversion run.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one archived conversion run.
type Run struct {
	// ID is the run UUID assigned by the telemetry reporter.
	ID string `json:"id"`

	// ConfigPath is the path of the input config document.
	ConfigPath string `json:"config_path"`

	// VaspDir is the VASP working directory, empty for config-only checks.
	VaspDir string `json:"vasp_dir,omitempty"`

	// Status is the run outcome.
	Status RunStatus `json:"status"`

	// Error holds the failure message for failed runs.
	Error *string `json:"error,omitempty"`

	// Advisories is the number of advisories the run emitted.
	Advisories int `json:"advisories"`

	// Snapshot is the YAML-encoded model for completed runs.
	Snapshot string `json:"snapshot,omitempty"`

	// StartedAt and CompletedAt bound the run.
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	// CreatedAt is when the row was written.
	CreatedAt time.Time `json:"created_at"`
}
