package issue

import (
	"context"

	"issuedesk/internal/shared/id"
)

// TrackingCodeGenerator produces public lookup codes.
type TrackingCodeGenerator interface {
	Generate(ctx context.Context) (string, error)
}

type randomTrackingCodeGenerator struct{}

// NewTrackingCodeGenerator draws 12 random uppercase alphanumerics. There is
// no collision retry; the unique index on tracking_code is the backstop.
func NewTrackingCodeGenerator() TrackingCodeGenerator {
	return randomTrackingCodeGenerator{}
}

func (randomTrackingCodeGenerator) Generate(ctx context.Context) (string, error) {
	return id.NewTrackingCode()
}
