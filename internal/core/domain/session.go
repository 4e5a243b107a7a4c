package domain

// Phase is the explicit state tag of a call session. Idle is modelled as the
// absence of a session rather than a phase of its own.
type Phase string

const (
	PhaseRinging     Phase = "ringing"
	PhaseNegotiating Phase = "negotiating"
	PhaseActive      Phase = "active"
)

// CallSession is one in-progress call between an ordered pair of identities.
// The caller is always the side that sent the initial offer.
type CallSession struct {
	Caller string
	Callee string
	Phase  Phase
}

// Involves reports whether name is either party of the session.
func (s CallSession) Involves(name string) bool {
	return s.Caller == name || s.Callee == name
}

// PeerOf returns the other party of the session.
func (s CallSession) PeerOf(name string) (string, bool) {
	switch name {
	case s.Caller:
		return s.Callee, true
	case s.Callee:
		return s.Caller, true
	}
	return "", false
}
