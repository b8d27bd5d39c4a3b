package port

import (
	"context"

	"github.com/garyjia/invoice-portal/internal/domain/entity"
)

// Submitter receives a validated payload and owns its transport.
type Submitter interface {
	Submit(ctx context.Context, payload *entity.SubmissionPayload) error
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, payload *entity.SubmissionPayload) error

// Submit calls f(ctx, payload)
func (f SubmitterFunc) Submit(ctx context.Context, payload *entity.SubmissionPayload) error {
	return f(ctx, payload)
}
