// Package a2a defines the A2A (Agent-to-Agent) wire types served by the
// bridge: messages with their tagged part union, the task result shape, and
// the agent-card discovery document.
//
// Part decoding accepts both the current "kind" discriminator and the older
// "type" tag for text parts, since both caller dialects are live.
package a2a
