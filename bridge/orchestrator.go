// Package bridge composes the JSON-RPC chat surface with the remote
// assistant client: one orchestrator handles the whole turn, and thin
// transport adapters translate their native request/response shapes around
// it.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agentbridge/agentbridge/a2a"
	"github.com/agentbridge/agentbridge/foundry"
	"github.com/agentbridge/agentbridge/rpc"
)

// noReplyText is returned when the run completes but the thread holds no
// assistant-authored message.
const noReplyText = "No reply"

// ResponseShape selects the success-envelope payload format.
type ResponseShape string

const (
	// ShapeMessage returns the bare assistant message.
	ShapeMessage ResponseShape = "message"
	// ShapeTask wraps the reply in a completed task object.
	ShapeTask ResponseShape = "task"
)

// ParseShape validates a shape name from configuration.
func ParseShape(s string) (ResponseShape, error) {
	switch ResponseShape(s) {
	case ShapeMessage, ShapeTask:
		return ResponseShape(s), nil
	default:
		return "", fmt.Errorf("unknown response shape %q (must be message or task)", s)
	}
}

// Orchestrator drives one chat turn: envelope validation, text extraction,
// the remote thread/message/run sequence, the run wait, and reply
// formatting. It holds no per-turn state and is safe for concurrent use.
type Orchestrator struct {
	client     *foundry.Client
	shape      ResponseShape
	runTimeout time.Duration
	log        *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithShape sets the success-envelope payload format.
func WithShape(shape ResponseShape) Option {
	return func(o *Orchestrator) {
		o.shape = shape
	}
}

// WithRunTimeout bounds the remote portion of a turn, including the run
// poll loop.
func WithRunTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.runTimeout = d
	}
}

// WithLogger sets the logger for turn-level events.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// New creates an Orchestrator around the given remote client.
func New(client *foundry.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:     client,
		shape:      ShapeTask,
		runTimeout: 2 * time.Minute,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// sendParams is the params object of a message/send request.
type sendParams struct {
	Message a2a.Message `json:"message"`
}

// HandleMessage services one chat turn from a raw JSON-RPC request body
// and always produces a response envelope; every failure mode is reported
// in-band via the error field.
func (o *Orchestrator) HandleMessage(ctx context.Context, body []byte) rpc.Response {
	req, errResp := rpc.Decode(body)
	if errResp != nil {
		return *errResp
	}

	var params sendParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return *rpc.NewError(req.ID, rpc.CodeInvalidParams, "Invalid params: "+err.Error())
		}
	}

	text, ok := params.Message.FirstText()
	if !ok {
		return *rpc.NewError(req.ID, rpc.CodeInvalidParams, "Invalid params: no valid text part")
	}

	log := o.log.With("method", req.Method, "id", req.ID)
	log.Info("chat turn started")
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, o.runTimeout)
	defer cancel()

	reply, err := o.runTurn(ctx, text)
	if err != nil {
		log.Error("chat turn failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return *rpc.NewError(req.ID, rpc.CodeInternalError, err.Error())
	}

	log.Info("chat turn completed", "duration_ms", time.Since(start).Milliseconds())
	return *rpc.NewResponse(req.ID, o.formatResult(params.Message, reply))
}

// runTurn performs the remote sequence. A failure at any step aborts the
// turn; the thread and run already created remain on the remote side,
// whose service owns their lifecycle.
func (o *Orchestrator) runTurn(ctx context.Context, text string) (string, error) {
	threadID, err := o.client.CreateThread(ctx)
	if err != nil {
		return "", err
	}

	if err := o.client.PostMessage(ctx, threadID, text); err != nil {
		return "", err
	}

	runID, err := o.client.StartRun(ctx, threadID)
	if err != nil {
		return "", err
	}

	if err := o.client.AwaitRun(ctx, threadID, runID); err != nil {
		return "", err
	}

	messages, err := o.client.ListMessages(ctx, threadID)
	if err != nil {
		return "", err
	}

	reply, ok := messages.AssistantReply()
	if !ok {
		reply = noReplyText
	}
	return reply, nil
}

// formatResult shapes the reply per the configured response format.
func (o *Orchestrator) formatResult(inbound a2a.Message, reply string) any {
	msg := a2a.NewMessage(a2a.RoleAssistant, a2a.NewTextPart(reply))

	if o.shape == ShapeMessage {
		return msg
	}

	contextID := uuid.New().String()
	if inbound.ContextID != nil && *inbound.ContextID != "" {
		contextID = *inbound.ContextID
	}

	task := a2a.NewTask(uuid.New().String(), contextID)
	task.Status = a2a.NewTaskStatus(a2a.TaskStateCompleted)
	task.Status.Message = &msg
	task.History = []a2a.Message{msg}
	return task
}
