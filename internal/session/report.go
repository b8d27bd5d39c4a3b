package session

import (
	"github.com/garyjia/invoice-portal/internal/domain/entity"
	"github.com/garyjia/invoice-portal/internal/interfaces/surface"
)

// Report is the wire form of an Outcome, shared by every transport
type Report struct {
	Ops        []surface.Op      `json:"ops"`
	Submission *SubmissionReport `json:"submission,omitempty"`
}

// SubmissionReport describes what a submit event decided
type SubmissionReport struct {
	Valid   bool                      `json:"valid"`
	Errors  []FieldErrorReport        `json:"errors,omitempty"`
	Payload *entity.SubmissionPayload `json:"payload,omitempty"`
}

// FieldErrorReport is one rendered validation error
type FieldErrorReport struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Report converts the outcome for the wire. A nil outcome reports nothing.
func (o *Outcome) Report() *Report {
	if o == nil {
		return nil
	}
	r := &Report{Ops: o.Ops}
	if o.Submit == nil {
		return r
	}

	sub := &SubmissionReport{
		Valid:   o.Submit.Validation.Valid,
		Payload: o.Submit.Payload,
	}
	for _, fe := range o.Submit.Validation.Errors {
		sub.Errors = append(sub.Errors, FieldErrorReport{
			Field:   string(fe.Field),
			Message: fe.Message,
		})
	}
	r.Submission = sub
	return r
}
