package memory

import (
	"fmt"

	"github.com/Wyydra/dial/internal/core/domain"
)

type pair struct {
	caller string
	callee string
}

// Tracker implements port.SessionTracker with an explicit phase tag per
// session, keyed by the ordered (caller, callee) pair.
type Tracker struct {
	sessions map[pair]domain.Phase
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[pair]domain.Phase),
	}
}

func (t *Tracker) Start(caller, callee string) error {
	for p := range t.sessions {
		s := domain.CallSession{Caller: p.caller, Callee: p.callee}
		if s.Involves(caller) {
			return fmt.Errorf("%w: %q", domain.ErrSessionExists, caller)
		}
		if s.Involves(callee) {
			return fmt.Errorf("%w: %q", domain.ErrSessionExists, callee)
		}
	}
	t.sessions[pair{caller, callee}] = domain.PhaseRinging
	return nil
}

func (t *Tracker) Accept(caller, callee string) error {
	return t.transition(caller, callee, domain.PhaseRinging, domain.PhaseNegotiating)
}

func (t *Tracker) Answer(caller, callee string) error {
	return t.transition(caller, callee, domain.PhaseNegotiating, domain.PhaseActive)
}

func (t *Tracker) Reject(caller, callee string) error {
	p := pair{caller, callee}
	phase, ok := t.sessions[p]
	if !ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrNoSession, caller, callee)
	}
	if phase != domain.PhaseRinging {
		return fmt.Errorf("%w: reject in phase %s", domain.ErrInvalidTransition, phase)
	}
	delete(t.sessions, p)
	return nil
}

func (t *Tracker) transition(caller, callee string, from, to domain.Phase) error {
	p := pair{caller, callee}
	phase, ok := t.sessions[p]
	if !ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrNoSession, caller, callee)
	}
	if phase != from {
		return fmt.Errorf("%w: %s -> %s from phase %s", domain.ErrInvalidTransition, from, to, phase)
	}
	t.sessions[p] = to
	return nil
}

func (t *Tracker) Peer(name string) (string, bool) {
	for p := range t.sessions {
		s := domain.CallSession{Caller: p.caller, Callee: p.callee}
		if peer, ok := s.PeerOf(name); ok {
			return peer, true
		}
	}
	return "", false
}

func (t *Tracker) End(a, b string) (domain.CallSession, bool) {
	for _, p := range []pair{{a, b}, {b, a}} {
		if phase, ok := t.sessions[p]; ok {
			delete(t.sessions, p)
			return domain.CallSession{Caller: p.caller, Callee: p.callee, Phase: phase}, true
		}
	}
	return domain.CallSession{}, false
}

func (t *Tracker) EndByParticipant(name string) (domain.CallSession, bool) {
	for p, phase := range t.sessions {
		s := domain.CallSession{Caller: p.caller, Callee: p.callee, Phase: phase}
		if s.Involves(name) {
			delete(t.sessions, p)
			return s, true
		}
	}
	return domain.CallSession{}, false
}
