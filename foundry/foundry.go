// Package foundry is a client for the hosted assistant service's
// project-scoped Agents REST API: threads, messages, and asynchronous runs
// under a versioned base URL, all behind a bearer credential.
//
// Each method is a single authenticated call; failures propagate
// immediately with no retries. AwaitRun drives a run's asynchronous
// lifecycle to a terminal status with a fixed-interval, context-bounded
// poll loop.
package foundry

import (
	"fmt"
)

// Config identifies the remote project and assistant. It is built once at
// startup and passed explicitly to NewClient.
type Config struct {
	Service     string // remote service resource name
	Project     string // project the assistant lives in
	APIVersion  string // e.g. "2025-05-01"
	AssistantID string // fixed assistant handling every turn
}

// BaseURL returns the versioned project base URL for the configured
// service.
func (c Config) BaseURL() string {
	return fmt.Sprintf("https://%s.services.ai.azure.com/api/projects/%s", c.Service, c.Project)
}

// Validate checks that all required identifiers are present.
func (c Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("service name is required")
	}
	if c.Project == "" {
		return fmt.Errorf("project name is required")
	}
	if c.AssistantID == "" {
		return fmt.Errorf("assistant id is required")
	}
	if c.APIVersion == "" {
		return fmt.Errorf("api version is required")
	}
	return nil
}

// RunStatus is the remote-reported state of a run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelled  RunStatus = "cancelled"
)

// IsTerminal reports whether the status ends the run. Anything the service
// reports outside the terminal set keeps the poll loop going.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// Thread is the remote conversation context created for a single turn.
type Thread struct {
	ID string `json:"id"`
}

// Run is an asynchronous unit of work on a thread.
type Run struct {
	ID     string    `json:"id"`
	Status RunStatus `json:"status"`
}

// ThreadMessage is one message in a thread, as returned by the list
// endpoint. Content entries mirror the remote wire shape.
type ThreadMessage struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content []MessageContent `json:"content"`
}

// MessageContent is a single content block of a thread message.
type MessageContent struct {
	Type string       `json:"type"`
	Text *MessageText `json:"text,omitempty"`
}

// MessageText holds the text value of a text content block.
type MessageText struct {
	Value string `json:"value"`
}

// MessageList is the ordered sequence returned by the list endpoint,
// newest first.
type MessageList struct {
	Data []ThreadMessage `json:"data"`
}

// AssistantReply returns the first text value authored by the assistant
// role, scanning messages in returned order. ok is false when no assistant
// text exists.
func (l MessageList) AssistantReply() (string, bool) {
	for _, m := range l.Data {
		if m.Role != "assistant" {
			continue
		}
		for _, c := range m.Content {
			if c.Type == "text" && c.Text != nil {
				return c.Text.Value, true
			}
		}
	}
	return "", false
}
