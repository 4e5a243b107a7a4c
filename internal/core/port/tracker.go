package port

import "github.com/Wyydra/dial/internal/core/domain"

// SessionTracker owns the call-session state machine. Transition methods
// return domain errors instead of silently mutating, so the relay can reject
// events that are not legal in the current phase.
//
// Like Registry, implementations rely on the relay loop being the sole caller.
type SessionTracker interface {
	// Start records a new session in the ringing phase. Fails with
	// ErrSessionExists if either party is already in a call.
	Start(caller, callee string) error

	// Accept moves the session to negotiating. Legal only from ringing.
	Accept(caller, callee string) error

	// Reject tears the session down. Legal only from ringing.
	Reject(caller, callee string) error

	// Answer moves the session to active. Legal only from negotiating.
	Answer(caller, callee string) error

	// Peer resolves the other party of the session name participates in.
	Peer(name string) (string, bool)

	// End removes the session for the pair, regardless of phase or order.
	End(a, b string) (domain.CallSession, bool)

	// EndByParticipant removes the session name participates in, if any.
	// Used by disconnect cleanup.
	EndByParticipant(name string) (domain.CallSession, bool)
}
