package quiz

// Phase is the position of a run in the quiz state machine.
type Phase int

const (
	// PhaseEmpty is the terminal state of a run started without questions.
	PhaseEmpty Phase = iota
	// PhaseAwaitingAnswer waits for input on the current question.
	PhaseAwaitingAnswer
	// PhaseAnswerRevealed shows the solution before advancing (practice only).
	PhaseAnswerRevealed
	// PhaseAdvancing moves between questions; input is ignored until Settle.
	PhaseAdvancing
	// PhaseFinished is the terminal state after completion or time-up.
	PhaseFinished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAnswerRevealed:
		return "answer-revealed"
	case PhaseAdvancing:
		return "advancing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseEmpty || p == PhaseFinished
}

// FinishReason explains how a run reached PhaseFinished.
type FinishReason string

const (
	// ReasonCompleted means the last question was answered.
	ReasonCompleted FinishReason = "completed"
	// ReasonTimeUp means the total time budget ran out.
	ReasonTimeUp FinishReason = "time-up"
)

// RunState is an immutable snapshot of a run. The runner replaces it on
// every transition and bumps Epoch.
type RunState struct {
	Phase  Phase
	Index  int
	Target int
	Buffer string
	Ledger Ledger
	Epoch  uint64
	Reason FinishReason
}

func emptyState() RunState {
	return RunState{Phase: PhaseEmpty}
}

func awaitingState(index int, buffer string, ledger Ledger) RunState {
	return RunState{Phase: PhaseAwaitingAnswer, Index: index, Target: index, Buffer: buffer, Ledger: ledger}
}

func revealedState(from RunState) RunState {
	return RunState{Phase: PhaseAnswerRevealed, Index: from.Index, Target: from.Index, Buffer: from.Buffer, Ledger: from.Ledger}
}

func advancingState(index, target int, ledger Ledger) RunState {
	return RunState{Phase: PhaseAdvancing, Index: index, Target: target, Ledger: ledger}
}

func finishedState(index int, ledger Ledger, reason FinishReason) RunState {
	return RunState{Phase: PhaseFinished, Index: index, Target: index, Ledger: ledger, Reason: reason}
}
