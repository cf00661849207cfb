// Package rpc implements the JSON-RPC 2.0 envelope used by the chat
// endpoint. Requests are validated for version, method, and id; responses
// carry exactly one of result or error and always echo the request id.
package rpc

import (
	"encoding/json"
)

// Version is the only accepted value of the "jsonrpc" field.
const Version = "2.0"

// JSON-RPC error codes used by the bridge.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32000
)

// Method names accepted for a chat turn. Both spellings are in use by A2A
// clients in the wild.
const (
	MethodMessageSend = "message/send"
	MethodSendMessage = "sendMessage"
)

// Request represents a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response represents a JSON-RPC 2.0 response. Exactly one of Result or
// Error is set. The ID field is always serialized, null when unknown.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewResponse creates a success response echoing the given request id.
func NewResponse(id, result any) *Response {
	return &Response{JSONRPC: Version, Result: result, ID: id}
}

// NewError creates an error response. Pass a nil id when the request id
// could not be determined; it is serialized as null.
func NewError(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: Version,
		Error:   &Error{Code: code, Message: message},
		ID:      id,
	}
}

// Decode parses and validates a JSON-RPC request body. On failure it
// returns a ready-to-send error response instead of a request; the original
// id is echoed whenever the body parsed far enough to expose one.
func Decode(body []byte) (*Request, *Response) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		// A body that is valid JSON but not a request object is an
		// invalid request, not a parse error.
		if json.Valid(body) {
			return nil, NewError(nil, CodeInvalidRequest, "Invalid Request")
		}
		return nil, NewError(nil, CodeParseError, "Parse error")
	}
	if req.JSONRPC != Version {
		return nil, NewError(req.ID, CodeInvalidRequest, "Invalid JSON-RPC version")
	}
	if req.Method == "" || req.ID == nil {
		return nil, NewError(req.ID, CodeInvalidRequest, "Missing method or id")
	}
	if req.Method != MethodMessageSend && req.Method != MethodSendMessage {
		return nil, NewError(req.ID, CodeMethodNotFound, "Method not found: "+req.Method)
	}
	return &req, nil
}
