package service

import (
	"encoding/json"
	"fmt"

	"github.com/Wyydra/dial/internal/core/domain"
	"github.com/Wyydra/dial/internal/core/port"
	"github.com/rs/zerolog/log"
)

// Event is one inbound client frame, queued for the relay loop.
type Event struct {
	Sender port.Client
	Name   string
	Data   json.RawMessage
}

// Relay routes signaling events between connected clients and drives the
// call-session state machine.
//
// All registry and tracker mutation happens on the single goroutine running
// Run, fed by the attach/detach/events channels. In-order processing off that
// queue is the only concurrency guarantee; no locks are involved.
type Relay struct {
	registry port.Registry
	tracker  port.SessionTracker

	// strict controls whether relay errors are reported back to the sender
	// as an error event. Off by default: the reference behavior is to drop
	// silently, logging aside.
	strict bool

	clients map[port.Client]bool
	attach  chan port.Client
	detach  chan port.Client
	events  chan Event
	quit    chan struct{}
}

func NewRelay(registry port.Registry, tracker port.SessionTracker, strict bool) *Relay {
	return &Relay{
		registry: registry,
		tracker:  tracker,
		strict:   strict,
		clients:  make(map[port.Client]bool),
		attach:   make(chan port.Client),
		detach:   make(chan port.Client),
		events:   make(chan Event),
		quit:     make(chan struct{}),
	}
}

// Attach adds a connection to the relay. Connections start anonymous; they
// appear in the registry only after a join-user event.
func (r *Relay) Attach(c port.Client) {
	r.attach <- c
}

// Detach removes a connection and cleans up its registry entry and any call
// session it participated in.
func (r *Relay) Detach(c port.Client) {
	r.detach <- c
}

// Dispatch queues an inbound event for processing.
func (r *Relay) Dispatch(ev Event) {
	r.events <- ev
}

func (r *Relay) Stop() {
	close(r.quit)
}

func (r *Relay) Run() {
	for {
		select {
		case <-r.quit:
			log.Info().Msg("Stopping relay. Disconnecting all clients.")
			for client := range r.clients {
				if err := client.Close(); err != nil {
					log.Error().Err(err).Str("client_id", client.ID()).Msg("Error closing client connection")
				}
				delete(r.clients, client)
			}
			return

		case client := <-r.attach:
			r.clients[client] = true
			log.Info().Int("count", len(r.clients)).Str("client_id", client.ID()).Msg("Client attached")

		case client := <-r.detach:
			r.drop(client)

		case ev := <-r.events:
			r.handleEvent(ev)
		}
	}
}

func (r *Relay) handleEvent(ev Event) {
	var err error
	switch ev.Name {
	case domain.EventJoinUser:
		err = r.handleJoin(ev.Sender, ev.Data)
	case domain.EventOffer:
		err = r.handleOffer(ev.Data)
	case domain.EventAuthAck:
		err = r.handleAuthAck(ev.Data)
	case domain.EventAnswer:
		err = r.handleAnswer(ev.Data)
	case domain.EventICECandidate:
		err = r.handleCandidate(ev.Sender, ev.Data)
	case domain.EventCallEnded:
		err = r.handleCallEnded(ev.Data)
	case domain.EventEndCall:
		err = r.handleEndCall(ev.Data)
	default:
		log.Warn().Str("event", ev.Name).Str("client_id", ev.Sender.ID()).Msg("Unknown event, dropping")
		return
	}

	if err != nil {
		// Never fatal: the relay swallows failures at this boundary.
		log.Warn().Err(err).Str("event", ev.Name).Str("client_id", ev.Sender.ID()).Msg("Event dropped")
		if r.strict {
			r.send(ev.Sender, domain.EventError, domain.ErrorInfo{
				Code:    domain.ErrorCode(err),
				Message: err.Error(),
			})
		}
	}
}

func (r *Relay) handleJoin(sender port.Client, data json.RawMessage) error {
	name, err := decodeJoin(data)
	if err != nil {
		return err
	}
	r.registry.Register(name, sender)
	log.Info().Str("username", name).Str("client_id", sender.ID()).Msg("User joined")
	r.broadcastSnapshot()
	return nil
}

// decodeJoin accepts the reference client's bare string payload as well as a
// {"name": ...} object.
func decodeJoin(data json.RawMessage) (string, error) {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return "", fmt.Errorf("join-user: %w", err)
		}
		name = obj.Name
	}
	if name == "" {
		return "", fmt.Errorf("join-user: empty name")
	}
	return name, nil
}

func (r *Relay) handleOffer(data json.RawMessage) error {
	var sig domain.OfferSignal
	if err := json.Unmarshal(data, &sig); err != nil {
		return fmt.Errorf("offer: %w", err)
	}
	if err := sig.Validate(); err != nil {
		return err
	}
	callee, ok := r.registry.Lookup(sig.To)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRecipient, sig.To)
	}
	if _, ok := r.registry.Lookup(sig.From); !ok {
		return fmt.Errorf("%w: caller %q not joined", domain.ErrUnknownRecipient, sig.From)
	}
	if err := r.tracker.Start(sig.From, sig.To); err != nil {
		return err
	}
	r.registry.SetPendingOffer(sig.From, sig.Offer)
	r.send(callee, domain.EventAuthRequest, domain.AuthRequest{From: sig.From})
	return nil
}

func (r *Relay) handleAuthAck(data json.RawMessage) error {
	var ack domain.AuthAck
	if err := json.Unmarshal(data, &ack); err != nil {
		return fmt.Errorf("auth-ack: %w", err)
	}
	if err := ack.Validate(); err != nil {
		return err
	}

	if !ack.Accepted {
		if err := r.tracker.Reject(ack.From, ack.To); err != nil {
			return err
		}
		r.registry.TakePendingOffer(ack.From)
		caller, ok := r.registry.Lookup(ack.From)
		if !ok {
			return fmt.Errorf("%w: caller %q", domain.ErrUnknownRecipient, ack.From)
		}
		r.send(caller, domain.EventCallRejected, domain.CallRejected{From: ack.From, To: ack.To})
		return nil
	}

	if err := r.tracker.Accept(ack.From, ack.To); err != nil {
		return err
	}
	offer, ok := r.registry.TakePendingOffer(ack.From)
	if !ok {
		// Ringing without a stored offer breaks the session invariant; tear
		// the session down rather than leave it stuck in negotiating.
		r.tracker.End(ack.From, ack.To)
		return fmt.Errorf("%w: caller %q", domain.ErrNoPendingOffer, ack.From)
	}
	callee, ok := r.registry.Lookup(ack.To)
	if !ok {
		r.tracker.End(ack.From, ack.To)
		return fmt.Errorf("%w: %q", domain.ErrUnknownRecipient, ack.To)
	}
	r.send(callee, domain.EventOffer, domain.OfferSignal{From: ack.From, To: ack.To, Offer: offer})
	return nil
}

func (r *Relay) handleAnswer(data json.RawMessage) error {
	var sig domain.AnswerSignal
	if err := json.Unmarshal(data, &sig); err != nil {
		return fmt.Errorf("answer: %w", err)
	}
	if err := sig.Validate(); err != nil {
		return err
	}
	if err := r.tracker.Answer(sig.From, sig.To); err != nil {
		return err
	}
	// The answer travels to the original caller, named by from.
	caller, ok := r.registry.Lookup(sig.From)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRecipient, sig.From)
	}
	r.send(caller, domain.EventAnswer, sig)
	return nil
}

// handleCandidate relays an ICE candidate to the other party of the sender's
// session. Candidates carry no addressing of their own; scoping them to the
// session keeps them away from unrelated clients.
func (r *Relay) handleCandidate(sender port.Client, data json.RawMessage) error {
	name, ok := r.registry.NameOf(sender)
	if !ok {
		return fmt.Errorf("%w: candidate from anonymous connection", domain.ErrNoSession)
	}
	peerName, ok := r.tracker.Peer(name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrNoSession, name)
	}
	peer, ok := r.registry.Lookup(peerName)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRecipient, peerName)
	}
	r.send(peer, domain.EventICECandidate, data)
	return nil
}

func (r *Relay) handleCallEnded(data json.RawMessage) error {
	var pair domain.CallEnded
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if pair.From == "" || pair.To == "" {
		return fmt.Errorf("call-ended: missing from/to")
	}
	if _, ok := r.tracker.End(pair.From, pair.To); !ok {
		log.Debug().Str("from", pair.From).Str("to", pair.To).Msg("call-ended without active session")
	}
	// Drop a leftover ring-phase offer so a stale accept cannot revive it.
	r.registry.TakePendingOffer(pair.From)

	// Deliver to each party that still resolves; a missing side is fine.
	for _, name := range []string{pair.From, pair.To} {
		if client, ok := r.registry.Lookup(name); ok {
			r.send(client, domain.EventCallEnded, pair)
		}
	}
	return nil
}

// handleEndCall is the reserved end-call path: a pure relay to the named
// recipient, kept for protocol compatibility.
func (r *Relay) handleEndCall(data json.RawMessage) error {
	var sig domain.EndCall
	if err := json.Unmarshal(data, &sig); err != nil {
		return fmt.Errorf("end-call: %w", err)
	}
	target, ok := r.registry.Lookup(sig.To)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRecipient, sig.To)
	}
	r.send(target, domain.EventEndCall, sig)
	return nil
}

// broadcastSnapshot sends the full online-user list to every attached
// connection, named or not.
func (r *Relay) broadcastSnapshot() {
	snap := r.registry.Snapshot()
	var failed []port.Client
	for client := range r.clients {
		if err := client.Send(domain.EventJoined, snap); err != nil {
			log.Error().Err(err).Str("client_id", client.ID()).Msg("Error broadcasting snapshot")
			failed = append(failed, client)
		}
	}
	for _, client := range failed {
		r.drop(client)
	}
}

// send is fire-and-forget; a failed send detaches the target connection.
func (r *Relay) send(target port.Client, event string, data any) {
	if err := target.Send(event, data); err != nil {
		log.Error().Err(err).Str("client_id", target.ID()).Str("event", event).Msg("Error sending event")
		r.drop(target)
	}
}

// drop removes a connection, unregisters its identity and silently tears down
// any session it was part of. The peer of a torn-down session is not
// notified; it learns of the loss when its next call message fails to
// resolve.
func (r *Relay) drop(c port.Client) {
	if _, ok := r.clients[c]; !ok {
		return
	}
	delete(r.clients, c)

	name, removed := r.registry.Unregister(c)
	if removed {
		if sess, ok := r.tracker.EndByParticipant(name); ok {
			r.registry.TakePendingOffer(sess.Caller)
			log.Info().Str("username", name).Str("phase", string(sess.Phase)).Msg("Session ended by disconnect")
		}
		r.broadcastSnapshot()
	}

	if err := c.Close(); err != nil {
		log.Debug().Err(err).Str("client_id", c.ID()).Msg("Error closing client connection")
	}
	log.Info().Int("count", len(r.clients)).Str("client_id", c.ID()).Msg("Client detached")
}
