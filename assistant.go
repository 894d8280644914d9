package apptdash

import "context"

// Messages displayed in place of an assistant reply.
const (
	SummaryFallback  = "Unable to analyze the schedule right now."
	AnswerFallback   = "Sorry, something went wrong while processing your question."
	NoInsightMessage = "Not enough data to analyze."
)

// Assistant answers natural language requests about a set of appointments.
// The full set is passed on every call; implementations keep no state.
type Assistant interface {
	// Summarize analyzes busy periods, conflicts, and staffing needs.
	// Returns EINVALID if appts is empty.
	Summarize(ctx context.Context, appts []*Appointment) (string, error)

	// Answer answers a free-form question about the appointments.
	// Returns EINVALID if the question is blank or appts is empty.
	Answer(ctx context.Context, question string, appts []*Appointment) (string, error)
}
