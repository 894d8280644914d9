package mock

import (
	"context"

	"github.com/fwojciec/apptdash"
)

var _ apptdash.Assistant = (*Assistant)(nil)

// Assistant is a mock implementation of apptdash.Assistant.
type Assistant struct {
	SummarizeFn func(ctx context.Context, appts []*apptdash.Appointment) (string, error)
	AnswerFn    func(ctx context.Context, question string, appts []*apptdash.Appointment) (string, error)
}

func (a *Assistant) Summarize(ctx context.Context, appts []*apptdash.Appointment) (string, error) {
	return a.SummarizeFn(ctx, appts)
}

func (a *Assistant) Answer(ctx context.Context, question string, appts []*apptdash.Appointment) (string, error) {
	return a.AnswerFn(ctx, question, appts)
}
