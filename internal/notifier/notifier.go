package notifier

import (
	"context"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
)

// Notifier sends a human-readable summary of a handled lifecycle event.
// Delivery is best-effort: callers log a returned error and move on, it never
// affects webhook processing.
type Notifier interface {
	Notify(ctx context.Context, event *domain.LifecycleEvent) error
}

// Noop is wired when no notification transport is configured.
type Noop struct{}

func (Noop) Notify(context.Context, *domain.LifecycleEvent) error {
	return nil
}
