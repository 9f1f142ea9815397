// Package sse implements the HTTP/SSE transport (spec §4.7): POST /mcp for
// request/response, and an optional GET /mcp/sse event stream for
// server-initiated notifications, each subscriber owning its own queue.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/rpc"
)

// Transport is an http.Handler exposing the dispatcher over HTTP/SSE. A
// Session is created whenever POST /mcp arrives without a known
// Mcp-Session-Id header; the new id is returned in that header, and later
// requests carrying it share the session.
type Transport struct {
	d   *rpc.Dispatcher
	log logr.Logger

	mu       sync.Mutex
	sessions map[string]*rpc.Session
	subs     map[string]*subscriber
}

type subscriber struct {
	id    string
	queue chan *rpc.Response
	done  chan struct{}
}

// New creates an SSE/HTTP transport bound to dispatcher d.
func New(d *rpc.Dispatcher, log logr.Logger) *Transport {
	return &Transport{
		d:        d,
		log:      log,
		sessions: make(map[string]*rpc.Session),
		subs:     make(map[string]*subscriber),
	}
}

const sessionHeader = "Mcp-Session-Id"

// Mux returns an http.ServeMux with POST /mcp and GET /mcp/sse registered,
// per spec §4.7 and §6.
func (t *Transport) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", t.handleRequest)
	mux.HandleFunc("/mcp/sse", t.handleStream)
	return mux
}

func (t *Transport) sessionFor(r *http.Request, w http.ResponseWriter) *rpc.Session {
	id := r.Header.Get(sessionHeader)
	t.mu.Lock()
	defer t.mu.Unlock()

	if id != "" {
		if sess, ok := t.sessions[id]; ok {
			return sess
		}
	}

	id = uuid.NewString()
	sess := rpc.NewSession()
	t.sessions[id] = sess
	w.Header().Set(sessionHeader, id)
	return sess
}

func (t *Transport) handleRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req rpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, rpc.NewError(nil, rpc.CodeParseError, "Parse error", err.Error()))
		return
	}

	sess := t.sessionFor(r, w)
	resp := t.d.Handle(r.Context(), sess, &req)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, resp *rpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleStream serves GET /mcp/sse: each subscriber gets its own per-client
// event queue; the stream closes when the client disconnects (spec §4.7).
func (t *Transport) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := &subscriber{id: uuid.NewString(), queue: make(chan *rpc.Response, 32), done: make(chan struct{})}
	t.mu.Lock()
	t.subs[sub.id] = sub
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		delete(t.subs, sub.id)
		t.mu.Unlock()
		close(sub.done)
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-sub.queue:
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// Notify pushes a server-initiated message to every connected SSE
// subscriber. Used for out-of-band notifications the dispatcher itself never
// originates today but the transport contract supports (spec §4.7).
func (t *Transport) Notify(resp *rpc.Response) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sub := range t.subs {
		select {
		case sub.queue <- resp:
		case <-sub.done:
		default:
			// Slow subscriber: drop rather than block the notifier, matching
			// the queue's role as best-effort fan-out, not guaranteed delivery.
		}
	}
}
