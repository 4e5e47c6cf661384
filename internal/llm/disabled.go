package llm

import (
	"context"
	"log/slog"
)

// Disabled is the Classifier used when the remote service could not be
// initialized. Every call degrades to the manual-review sentinel so the
// operator's workflow never blocks on AI availability.
type Disabled struct {
	Logger *slog.Logger
}

func (d Disabled) Classify(_ context.Context, _ string) Classification {
	if d.Logger != nil {
		d.Logger.Warn("llm.classify.unavailable", "reason", "service not initialized")
	}
	return Unavailable()
}
