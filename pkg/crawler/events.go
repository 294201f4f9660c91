package crawler

// Phase identifies a stage of the crawl lifecycle
type Phase string

const (
	PhaseAwaitAuth Phase = "await_auth"
	PhaseNavigate  Phase = "navigate"
	PhaseExtract   Phase = "extract"
	PhaseDone      Phase = "done"
)

// TerminationReason says why the pagination loop ended
type TerminationReason string

const (
	// ReasonCapReached means the requested photo cap was met
	ReasonCapReached TerminationReason = "cap_reached"
	// ReasonExhausted means no locator strategy found an actionable control
	ReasonExhausted TerminationReason = "exhausted"
	// ReasonAttemptLimit means the hard load-more ceiling was hit
	ReasonAttemptLimit TerminationReason = "attempt_limit"
)

// PassStats reports one extraction pass over the rendered document
type PassStats struct {
	// Attempt is the number of load-more activations performed so far
	Attempt int
	// New is the count of records first seen in this pass
	New int
	// Total is the accumulated record count after this pass
	Total int
}

// Events is the callback sink the crawler reports progress through. All
// fields are optional; the crawler never formats presentation text itself.
type Events struct {
	// PhaseChanged fires on every lifecycle transition
	PhaseChanged func(phase Phase)
	// PassCompleted fires after each full scan of the rendered document
	PassCompleted func(stats PassStats)
	// ControlActivated fires when a locator strategy clicks the control
	ControlActivated func(strategyName string)
	// Finished fires once, with the reason pagination stopped
	Finished func(reason TerminationReason, total int)
}

func (e Events) phaseChanged(phase Phase) {
	if e.PhaseChanged != nil {
		e.PhaseChanged(phase)
	}
}

func (e Events) passCompleted(stats PassStats) {
	if e.PassCompleted != nil {
		e.PassCompleted(stats)
	}
}

func (e Events) controlActivated(name string) {
	if e.ControlActivated != nil {
		e.ControlActivated(name)
	}
}

func (e Events) finished(reason TerminationReason, total int) {
	if e.Finished != nil {
		e.Finished(reason, total)
	}
}
