package rpc

import "sync/atomic"

// State is a session's position in the lifecycle state machine (spec §4.6).
type State int32

const (
	StateUninitialized State = iota
	StateInitialized
	StateShuttingDown
	StateClosed
)

// Session holds per-connection state. One Session exists per stdio process
// and one per SSE connection (spec §3 Session).
type Session struct {
	state      atomic.Int32
	clientInfo atomic.Value // ClientInfo
}

// NewSession creates a fresh, uninitialized session.
func NewSession() *Session {
	s := &Session{}
	s.state.Store(int32(StateUninitialized))
	return s
}

// State returns the session's current state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Initialize transitions uninitialized->initialized and records client info.
// Returns false if the session was not in StateUninitialized.
func (s *Session) Initialize(info ClientInfo) bool {
	if !s.state.CompareAndSwap(int32(StateUninitialized), int32(StateInitialized)) {
		return false
	}
	s.clientInfo.Store(info)
	return true
}

// ClientInfo returns the client info recorded at Initialize, if any.
func (s *Session) ClientInfo() (ClientInfo, bool) {
	v := s.clientInfo.Load()
	if v == nil {
		return ClientInfo{}, false
	}
	return v.(ClientInfo), true
}

// RequireInitialized reports whether the session is in StateInitialized,
// the precondition for every method except initialize (shutdown included).
func (s *Session) RequireInitialized() bool {
	return s.State() == StateInitialized
}

// Shutdown transitions initialized->closed. Returns false if the session was
// not in StateInitialized.
func (s *Session) Shutdown() bool {
	return s.state.CompareAndSwap(int32(StateInitialized), int32(StateClosed))
}
