package telemetry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Advisory codes for the diagnostics the parser can emit.
const (
	// AdvisoryNonContiguousShells reports shell indices that are not a
	// contiguous 1..N run.
	AdvisoryNonContiguousShells = "noncontiguous_shell_indices"

	// AdvisoryRedundantGroupParameter reports a group-scoped parameter in a
	// [Shell] section that was discarded because an explicit [Group]
	// section takes precedence.
	AdvisoryRedundantGroupParameter = "redundant_group_parameter"

	// AdvisoryMissingTetrahedra reports an IBZKPT file without tetrahedron
	// data.
	AdvisoryMissingTetrahedra = "missing_tetrahedra"
)

// Advisory is a non-fatal diagnostic: it records an ambiguity the parser
// resolved automatically rather than an error.
type Advisory struct {
	// Code identifies the advisory class.
	Code string `json:"code"`

	// Section is the config section involved, if applicable.
	Section string `json:"section,omitempty"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Timestamp is when the advisory was raised.
	Timestamp time.Time `json:"timestamp"`
}

// Reporter collects advisories for one parse run. Each advisory is logged at
// warn level as it arrives; the full batch stays available afterwards.
type Reporter struct {
	runID uuid.UUID
	log   zerolog.Logger

	mu         sync.Mutex
	advisories []Advisory
}

// NewReporter creates a Reporter logging through the given logger. Every
// reporter is tagged with a fresh run ID so diagnostics from concurrent runs
// stay distinguishable.
func NewReporter(logger zerolog.Logger) *Reporter {
	id := uuid.New()
	return &Reporter{
		runID: id,
		log:   logger.With().Str("run_id", id.String()).Logger(),
	}
}

// RunID returns the unique identifier of this run.
func (r *Reporter) RunID() uuid.UUID {
	return r.runID
}

// Advise records an advisory and logs it.
func (r *Reporter) Advise(adv Advisory) {
	if adv.Timestamp.IsZero() {
		adv.Timestamp = time.Now()
	}

	r.mu.Lock()
	r.advisories = append(r.advisories, adv)
	r.mu.Unlock()

	r.log.Warn().
		Str("code", adv.Code).
		Str("section", adv.Section).
		Msg(adv.Message)
}

// Advisories returns a copy of all advisories collected so far.
func (r *Reporter) Advisories() []Advisory {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Advisory, len(r.advisories))
	copy(out, r.advisories)
	return out
}

// Count returns the number of advisories collected so far.
func (r *Reporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.advisories)
}
