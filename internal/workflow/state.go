package workflow

// State is a phase of the generate-check-retry loop.
type State string

const (
	// StateGenerating means a generation call is in flight.
	StateGenerating State = "generating"

	// StateChecking means the artifact is under quality review.
	StateChecking State = "checking"

	// StateRetrying means the artifact failed review and a retry
	// budget remains.
	StateRetrying State = "retrying"

	// StateAccepted is terminal: the artifact passed quality review.
	StateAccepted State = "accepted"

	// StateExhausted is terminal: the retry budget ran out without a
	// passing artifact. The best failing candidate is kept.
	StateExhausted State = "exhausted"
)

// Terminal reports whether the state ends the workflow.
func (s State) Terminal() bool {
	return s == StateAccepted || s == StateExhausted
}
