package a2a

import (
	"encoding/json"
	"testing"
)

func TestFirstText(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		wantText string
		wantOK   bool
	}{
		{
			name:     "single text part",
			msg:      NewMessage(RoleUser, NewTextPart("Hello")),
			wantText: "Hello",
			wantOK:   true,
		},
		{
			name: "first text part wins",
			msg: NewMessage(RoleUser,
				NewTextPart("first"),
				NewTextPart("second"),
			),
			wantText: "first",
			wantOK:   true,
		},
		{
			name: "non-text parts before text are skipped",
			msg: NewMessage(RoleUser,
				DataPart{Kind: "data", Data: map[string]any{"k": "v"}},
				FilePart{Kind: "file", File: FileContent{URI: "http://example.com/a.png"}},
				NewTextPart("the question"),
			),
			wantText: "the question",
			wantOK:   true,
		},
		{
			name: "empty text part is not usable",
			msg: NewMessage(RoleUser,
				TextPart{Kind: "text", Text: ""},
			),
			wantOK: false,
		},
		{
			name:   "no parts",
			msg:    NewMessage(RoleUser),
			wantOK: false,
		},
		{
			name: "only non-text parts",
			msg: NewMessage(RoleUser,
				DataPart{Kind: "data", Data: "x"},
			),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := tt.msg.FirstText()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
		})
	}
}

func TestMessageUnmarshal(t *testing.T) {
	t.Run("kind-tagged text part", func(t *testing.T) {
		var m Message
		body := `{"role":"user","parts":[{"kind":"text","text":"What is the capital of France?"}],"messageId":"m1"}`
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		text, ok := m.FirstText()
		if !ok || text != "What is the capital of France?" {
			t.Errorf("FirstText = %q, %v", text, ok)
		}
		if m.MessageID != "m1" {
			t.Errorf("MessageID = %q", m.MessageID)
		}
	})

	t.Run("legacy type-tagged text part", func(t *testing.T) {
		var m Message
		body := `{"role":"user","parts":[{"type":"text","text":"legacy dialect"}],"messageId":"m2"}`
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		text, ok := m.FirstText()
		if !ok || text != "legacy dialect" {
			t.Errorf("FirstText = %q, %v", text, ok)
		}
	})

	t.Run("unknown part kind decodes and is skipped", func(t *testing.T) {
		var m Message
		body := `{"role":"user","parts":[{"kind":"video","url":"x"},{"kind":"text","text":"after"}],"messageId":"m3"}`
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(m.Parts) != 2 {
			t.Fatalf("parts = %d, want 2", len(m.Parts))
		}
		if _, ok := m.Parts[0].(DataPart); !ok {
			t.Errorf("unknown kind should decode as DataPart, got %T", m.Parts[0])
		}
		text, ok := m.FirstText()
		if !ok || text != "after" {
			t.Errorf("FirstText = %q, %v", text, ok)
		}
	})

	t.Run("context id round-trips", func(t *testing.T) {
		var m Message
		body := `{"role":"user","parts":[],"messageId":"m4","contextId":"ctx-9"}`
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if m.ContextID == nil || *m.ContextID != "ctx-9" {
			t.Errorf("ContextID = %v", m.ContextID)
		}
	})
}

func TestNewMessage(t *testing.T) {
	m := NewMessage(RoleAssistant, NewTextPart("Paris"))
	if m.Kind != "message" {
		t.Errorf("Kind = %q", m.Kind)
	}
	if m.MessageID == "" {
		t.Error("MessageID should be generated")
	}
	if m.Role != RoleAssistant {
		t.Errorf("Role = %q", m.Role)
	}
}
