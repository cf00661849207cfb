package a2a

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Role indicates the originator of a message.
type Role string

const (
	// RoleUser is the role for messages from the calling client.
	RoleUser Role = "user"
	// RoleAgent is the role A2A assigns to server-originated messages.
	RoleAgent Role = "agent"
	// RoleAssistant is the role the remote assistant service uses for its
	// replies; the bridge echoes it in result envelopes.
	RoleAssistant Role = "assistant"
)

// Message represents a single exchange between a user and the agent.
type Message struct {
	Kind      string         `json:"kind,omitempty"`
	MessageID string         `json:"messageId"`
	Role      Role           `json:"role"`
	Parts     []Part         `json:"parts"`
	ContextID *string        `json:"contextId,omitempty"`
	TaskID    *string        `json:"taskId,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewMessage creates a message with a generated id and the given parts.
func NewMessage(role Role, parts ...Part) Message {
	return Message{
		Kind:      "message",
		MessageID: uuid.New().String(),
		Role:      role,
		Parts:     parts,
	}
}

// FirstText returns the text of the first part that is textual and
// non-empty. Parts of other kinds are skipped, not errored. ok is false
// when no usable text exists.
func (m Message) FirstText() (text string, ok bool) {
	for _, p := range m.Parts {
		if tp, isText := p.(TextPart); isText && tp.Text != "" {
			return tp.Text, true
		}
	}
	return "", false
}

// UnmarshalJSON decodes the message, dispatching each element of the parts
// array through UnmarshalPart since Parts is an interface slice.
func (m *Message) UnmarshalJSON(data []byte) error {
	type messageAlias Message
	var tmp struct {
		messageAlias
		Parts []json.RawMessage `json:"parts"`
	}

	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	*m = Message(tmp.messageAlias)
	m.Parts = make([]Part, 0, len(tmp.Parts))

	for _, raw := range tmp.Parts {
		part, err := UnmarshalPart(raw)
		if err != nil {
			return err
		}
		m.Parts = append(m.Parts, part)
	}

	return nil
}

// Part represents a segment of a message (text, file, or data).
type Part interface {
	partMarker()
	GetKind() string
}

// TextPart represents a text segment within a message.
type TextPart struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (TextPart) partMarker()       {}
func (p TextPart) GetKind() string { return p.Kind }

// NewTextPart creates a TextPart with the given text.
func NewTextPart(text string) TextPart {
	return TextPart{Kind: "text", Text: text}
}

// FilePart represents a file reference within a message. The bridge never
// consumes these; they are carried so decoding round-trips.
type FilePart struct {
	Kind     string         `json:"kind"`
	File     FileContent    `json:"file"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (FilePart) partMarker()       {}
func (p FilePart) GetKind() string { return p.Kind }

// FileContent is file content, either inline bytes or a URI reference.
type FileContent struct {
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Bytes    string `json:"bytes,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// DataPart represents arbitrary structured data within a message. Unknown
// part kinds also decode into DataPart so they survive round-trips.
type DataPart struct {
	Kind     string         `json:"kind"`
	Data     any            `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (DataPart) partMarker()       {}
func (p DataPart) GetKind() string { return p.Kind }

// UnmarshalPart decodes a single part, dispatching on its "kind" tag. Text
// parts tagged with the legacy "type" discriminator are accepted as well.
func UnmarshalPart(data []byte) (Part, error) {
	var raw struct {
		Kind string `json:"kind"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	kind := raw.Kind
	if kind == "" {
		kind = raw.Type
	}

	switch kind {
	case "text":
		var p TextPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		p.Kind = "text"
		return p, nil
	case "file":
		var p FilePart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		var p DataPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

// TaskState represents the lifecycle state of a task result.
type TaskState string

const (
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
)

// TaskStatus represents the final status of a task.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// NewTaskStatus creates a TaskStatus with the given state and a current
// timestamp.
func NewTaskStatus(state TaskState) TaskStatus {
	return TaskStatus{
		State:     state,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Task is the full-form result shape: a completed unit of work with the
// assistant's reply attached.
type Task struct {
	Kind      string     `json:"kind"`
	ID        string     `json:"id"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	History   []Message  `json:"history,omitempty"`
}

// NewTask creates a task with the given ids in the submitted shape; callers
// fill in the final status.
func NewTask(id, contextID string) *Task {
	return &Task{
		Kind:      "task",
		ID:        id,
		ContextID: contextID,
	}
}
