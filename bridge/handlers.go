package bridge

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentbridge/agentbridge/a2a"
	"github.com/agentbridge/agentbridge/rpc"
)

// ChatHandler returns the JSON-RPC chat endpoint. Application failures are
// reported in-band; the HTTP status is 200 for every envelope.
func ChatHandler(o *Orchestrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeEnvelope(w, *rpc.NewError(nil, rpc.CodeParseError, "Parse error"))
			return
		}

		writeEnvelope(w, o.HandleMessage(r.Context(), body))
	})
}

// CardHandler serves the agent discovery document with a permissive
// cross-origin header.
func CardHandler(card a2a.AgentCard) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		json.NewEncoder(w).Encode(card)
	})
}

// CORSMiddleware adds permissive cross-origin headers and answers
// preflight requests.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeEnvelope(w http.ResponseWriter, resp rpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(resp)
}
