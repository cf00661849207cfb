package foundry

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"github.com/agentbridge/agentbridge"
)

// errRunPending keeps the poll loop going while the run is non-terminal.
var errRunPending = errors.New("run still pending")

// AwaitRun polls the run until it reaches a terminal status, waiting the
// configured interval between checks. The wait is bounded by ctx: callers
// apply their turn deadline, and cancellation surfaces as a RunError so a
// stuck remote run cannot hold a request open indefinitely.
//
// A completed run returns nil. A failed or cancelled run returns a
// RunError carrying the terminal status. A remote-call failure while
// polling propagates as-is.
func (c *Client) AwaitRun(ctx context.Context, threadID, runID string) error {
	policy := backoff.WithContext(backoff.NewConstantBackOff(c.pollInterval), ctx)

	check := func() error {
		run, err := c.GetRun(ctx, threadID, runID)
		if err != nil {
			return backoff.Permanent(err)
		}
		switch {
		case run.Status == RunStatusCompleted:
			return nil
		case run.Status.IsTerminal():
			return backoff.Permanent(&agentbridge.RunError{Status: string(run.Status)})
		default:
			return errRunPending
		}
	}

	err := backoff.Retry(check, policy)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &agentbridge.RunError{Cause: err}
	}
	return err
}
