package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
		wantID   any
	}{
		{
			name:     "invalid JSON",
			body:     `{"jsonrpc": "2.0",`,
			wantCode: CodeParseError,
			wantMsg:  "Parse error",
			wantID:   nil,
		},
		{
			name:     "valid JSON but not an object",
			body:     `[1, 2, 3]`,
			wantCode: CodeInvalidRequest,
			wantMsg:  "Invalid Request",
			wantID:   nil,
		},
		{
			name:     "missing jsonrpc field",
			body:     `{"method":"message/send","id":"1"}`,
			wantCode: CodeInvalidRequest,
			wantMsg:  "Invalid JSON-RPC version",
			wantID:   "1",
		},
		{
			name:     "wrong jsonrpc version",
			body:     `{"jsonrpc":"1.0","method":"message/send","id":"1"}`,
			wantCode: CodeInvalidRequest,
			wantMsg:  "Invalid JSON-RPC version",
			wantID:   "1",
		},
		{
			name:     "missing id",
			body:     `{"jsonrpc":"2.0","method":"message/send"}`,
			wantCode: CodeInvalidRequest,
			wantMsg:  "Missing method or id",
			wantID:   nil,
		},
		{
			name:     "missing method",
			body:     `{"jsonrpc":"2.0","id":"7"}`,
			wantCode: CodeInvalidRequest,
			wantMsg:  "Missing method or id",
			wantID:   "7",
		},
		{
			name:     "unknown method echoes id",
			body:     `{"jsonrpc":"2.0","method":"tasks/get","id":"42"}`,
			wantCode: CodeMethodNotFound,
			wantMsg:  "Method not found: tasks/get",
			wantID:   "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, resp := Decode([]byte(tt.body))
			require.Nil(t, req)
			require.NotNil(t, resp)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
			assert.Equal(t, tt.wantID, resp.ID)
			assert.Nil(t, resp.Result)
		})
	}
}

func TestDecodeAcceptedMethods(t *testing.T) {
	for _, method := range []string{MethodMessageSend, MethodSendMessage} {
		t.Run(method, func(t *testing.T) {
			body := `{"jsonrpc":"2.0","method":"` + method + `","id":"1","params":{"message":{}}}`
			req, resp := Decode([]byte(body))
			require.Nil(t, resp)
			require.NotNil(t, req)
			assert.Equal(t, method, req.Method)
			assert.Equal(t, "1", req.ID)
			assert.NotEmpty(t, req.Params)
		})
	}
}

func TestResponseWire(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		data, err := json.Marshal(NewResponse("1", map[string]string{"ok": "yes"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","result":{"ok":"yes"},"id":"1"}`, string(data))
	})

	t.Run("error envelope with null id", func(t *testing.T) {
		data, err := json.Marshal(NewError(nil, CodeParseError, "Parse error"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","error":{"code":-32700,"message":"Parse error"},"id":null}`, string(data))
	})

	t.Run("exactly one of result and error", func(t *testing.T) {
		success := NewResponse("1", "r")
		assert.NotNil(t, success.Result)
		assert.Nil(t, success.Error)

		failure := NewError("1", CodeInternalError, "boom")
		assert.Nil(t, failure.Result)
		assert.NotNil(t, failure.Error)
	})
}
