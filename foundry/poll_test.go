package foundry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentbridge/agentbridge"
)

// runSequenceServer serves scripted run statuses, one per poll, repeating
// the last entry once the script is exhausted.
func runSequenceServer(t *testing.T, statuses []RunStatus) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(polls.Add(1)) - 1
		if n >= len(statuses) {
			n = len(statuses) - 1
		}
		json.NewEncoder(w).Encode(Run{ID: "run_1", Status: statuses[n]})
	}))
	t.Cleanup(server.Close)
	return server, &polls
}

func TestAwaitRun(t *testing.T) {
	ctx := context.Background()

	t.Run("polls once per non-terminal status until completed", func(t *testing.T) {
		server, polls := runSequenceServer(t, []RunStatus{
			RunStatusQueued, RunStatusInProgress, RunStatusCompleted,
		})

		client := newTestClient(server.URL, WithPollInterval(time.Millisecond))
		err := client.AwaitRun(ctx, "thread_abc", "run_1")
		require.NoError(t, err)
		assert.Equal(t, int32(3), polls.Load())
	})

	t.Run("immediately completed run polls exactly once", func(t *testing.T) {
		server, polls := runSequenceServer(t, []RunStatus{RunStatusCompleted})

		client := newTestClient(server.URL, WithPollInterval(time.Millisecond))
		require.NoError(t, client.AwaitRun(ctx, "thread_abc", "run_1"))
		assert.Equal(t, int32(1), polls.Load())
	})

	t.Run("failed run stops with RunError", func(t *testing.T) {
		server, polls := runSequenceServer(t, []RunStatus{RunStatusQueued, RunStatusFailed})

		client := newTestClient(server.URL, WithPollInterval(time.Millisecond))
		err := client.AwaitRun(ctx, "thread_abc", "run_1")
		require.Error(t, err)

		var runErr *agentbridge.RunError
		require.ErrorAs(t, err, &runErr)
		assert.Equal(t, "failed", runErr.Status)
		assert.Equal(t, "Run failed", err.Error())
		assert.Equal(t, int32(2), polls.Load())
	})

	t.Run("cancelled run stops with RunError", func(t *testing.T) {
		server, _ := runSequenceServer(t, []RunStatus{RunStatusCancelled})

		client := newTestClient(server.URL, WithPollInterval(time.Millisecond))
		err := client.AwaitRun(ctx, "thread_abc", "run_1")

		var runErr *agentbridge.RunError
		require.ErrorAs(t, err, &runErr)
		assert.Equal(t, "cancelled", runErr.Status)
	})

	t.Run("context deadline bounds a never-terminal run", func(t *testing.T) {
		server, _ := runSequenceServer(t, []RunStatus{RunStatusInProgress})

		deadlineCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		client := newTestClient(server.URL, WithPollInterval(5*time.Millisecond))
		err := client.AwaitRun(deadlineCtx, "thread_abc", "run_1")
		require.Error(t, err)

		var runErr *agentbridge.RunError
		require.ErrorAs(t, err, &runErr)
		assert.Empty(t, runErr.Status)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("remote failure while polling propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := newTestClient(server.URL, WithPollInterval(time.Millisecond))
		err := client.AwaitRun(ctx, "thread_abc", "run_1")

		var remoteErr *agentbridge.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, http.StatusServiceUnavailable, remoteErr.StatusCode)
	})
}
