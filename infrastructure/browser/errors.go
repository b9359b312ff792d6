package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/zeebo/errs"
)

var (
	// LaunchError wraps failures to start or stop the browser and its engine.
	LaunchError = errs.Class("browser launch")
	// InteractionError wraps failures of a single page call: navigation
	// failures, selectors that match nothing, timeouts.
	InteractionError = errs.Class("page interaction")
)

// isAlreadyClosed reports whether a close error only says the target was gone already.
func isAlreadyClosed(err error) bool {
	return errors.Is(err, playwright.ErrTargetClosed)
}

// callTimeout returns the timeout for one engine call: the default, shortened
// to whatever is left of the context deadline.
func callTimeout(ctx context.Context, def time.Duration) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return def, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, context.DeadlineExceeded
	}
	if def <= 0 || remaining < def {
		return remaining, nil
	}
	return def, nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func interactionErr(format string, args ...any) error {
	return InteractionError.Wrap(fmt.Errorf(format, args...))
}

func launchErr(format string, args ...any) error {
	return LaunchError.Wrap(fmt.Errorf(format, args...))
}
