package entities

// ModerationAction is the membership change applied by ban or unban
type ModerationAction string

const (
	ActionBan   ModerationAction = "ban"
	ActionUnban ModerationAction = "unban"
)

// ModerationMethod names one step of the ban/unban strategy
type ModerationMethod string

const (
	MethodBotAPI  ModerationMethod = "bot_api"
	MethodSession ModerationMethod = "session"
)

// StepOutcome is the typed result of a single strategy step
type StepOutcome string

const (
	// OutcomeApplied means the step performed the change.
	OutcomeApplied StepOutcome = "applied"
	// OutcomeDeclined means the step did not acknowledge the change and the next step runs.
	OutcomeDeclined StepOutcome = "declined"
	// OutcomeFailed means the step failed and the strategy stops.
	OutcomeFailed StepOutcome = "failed"
)

// StepResult records what one step did
type StepResult struct {
	Method  ModerationMethod
	Outcome StepOutcome
	Err     error
}

// ModerationResult is the outcome of the whole strategy.
// AppliedBy is empty when no step applied the change.
type ModerationResult struct {
	Action    ModerationAction
	AppliedBy ModerationMethod
	Steps     []StepResult
}

// Applied reports whether some step performed the change
func (r *ModerationResult) Applied() bool {
	return r.AppliedBy != ""
}
