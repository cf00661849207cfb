// Package agentbridge exposes a hosted conversational assistant as an
// A2A-discoverable agent.
//
// The bridge serves two HTTP surfaces: a static agent-card discovery
// document and a JSON-RPC 2.0 chat endpoint. Each chat turn forwards the
// user's text to the remote assistant service (create thread, post message,
// start run, poll to completion, fetch reply) and reshapes the reply into an
// A2A response envelope.
//
// The root package defines the error values shared by the subpackages:
//
//   - [github.com/agentbridge/agentbridge/rpc]: JSON-RPC 2.0 envelopes
//   - [github.com/agentbridge/agentbridge/a2a]: A2A messages, tasks, and agent cards
//   - [github.com/agentbridge/agentbridge/foundry]: remote assistant REST client
//   - [github.com/agentbridge/agentbridge/auth]: bearer token providers
//   - [github.com/agentbridge/agentbridge/bridge]: the chat orchestrator and HTTP handlers
//
// Two entry points wire the same orchestrator behind different hosting
// styles: cmd/bridged (standalone service) and cmd/funchost (serverless
// custom handler).
package agentbridge
