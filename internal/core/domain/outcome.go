package domain

// State is a step of the per-artifact resolution state machine.
type State string

const (
	// StateStart is the initial state with only a coordinate known.
	StateStart State = "start"
	// StateLocated means the download URL and cache file name are computed.
	StateLocated State = "located"
	// StateCacheHit means a valid cached file was found.
	StateCacheHit State = "cache-hit"
	// StateFetching means a placeholder was claimed and the download is running.
	StateFetching State = "fetching"
	// StateFetched means the download completed.
	StateFetched State = "fetched"
	// StateActivating means the file is being handed to the code activator.
	StateActivating State = "activating"
	// StateActivated is the terminal success state.
	StateActivated State = "activated"
	// StateFailed is the terminal failure state.
	StateFailed State = "failed"
)

// Stage names the step in which a resolution failed.
type Stage string

const (
	StageLocate   Stage = "locate"
	StageCache    Stage = "cache"
	StageFetch    Stage = "fetch"
	StageActivate Stage = "activate"
)

// Outcome is the terminal result of resolving a single artifact.
// Exactly one of Activated or Failed describes it: when Err is nil the
// artifact is active and Name carries its display name.
type Outcome struct {
	Coordinate Coordinate
	Location   Location

	// Name is the display name reported on success.
	Name string

	// Err is the cause of a failure, nil on success.
	Err error

	// Stage is where the failure happened. Empty on success.
	Stage Stage

	// CacheHit reports whether an existing cache entry was used.
	CacheHit bool

	// BytesFetched is the size of the download, zero on a cache hit.
	BytesFetched int64

	// Trail lists the states visited, in order.
	Trail []State
}

// Activated creates a successful outcome.
func Activated(coord Coordinate, name string) Outcome {
	return Outcome{Coordinate: coord, Name: name}
}

// Failed creates a failed outcome.
func Failed(coord Coordinate, stage Stage, cause error) Outcome {
	return Outcome{Coordinate: coord, Stage: stage, Err: cause}
}

// OK reports whether the artifact was activated.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Final returns the terminal state of the outcome.
func (o Outcome) Final() State {
	if o.OK() {
		return StateActivated
	}
	return StateFailed
}

// Skipped is a declaration that could not be parsed into a coordinate.
type Skipped struct {
	Declaration string
	Err         error
}

// Report aggregates the outcomes of one dependency check.
type Report struct {
	// Native is true when the host already provides library loading and the
	// check was short-circuited.
	Native bool

	// Outcomes holds one entry per valid declaration, in declaration order.
	Outcomes []Outcome

	// Skipped holds malformed declarations. They do not affect OK.
	Skipped []Skipped
}

// OK is the logical AND of all outcomes. An empty report is OK.
func (r Report) OK() bool {
	for _, o := range r.Outcomes {
		if !o.OK() {
			return false
		}
	}
	return true
}

// Counts returns the number of activated and failed outcomes.
func (r Report) Counts() (activated, failed int) {
	for _, o := range r.Outcomes {
		if o.OK() {
			activated++
		} else {
			failed++
		}
	}
	return activated, failed
}
