package memory

import (
	"encoding/json"

	"github.com/Wyydra/dial/internal/core/domain"
	"github.com/Wyydra/dial/internal/core/port"
)

type entry struct {
	client       port.Client
	pendingOffer json.RawMessage
}

// Registry implements port.Registry. State lives for the process lifetime;
// there is no persistence across restarts.
type Registry struct {
	users map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]*entry),
	}
}

func (r *Registry) Register(name string, client port.Client) {
	if name == "" {
		return
	}
	// Overwriting also discards any pending offer of the old binding.
	r.users[name] = &entry{client: client}
}

func (r *Registry) Lookup(name string) (port.Client, bool) {
	e, ok := r.users[name]
	if !ok {
		return nil, false
	}
	return e.client, true
}

func (r *Registry) NameOf(client port.Client) (string, bool) {
	for name, e := range r.users {
		if e.client == client {
			return name, true
		}
	}
	return "", false
}

func (r *Registry) Unregister(client port.Client) (string, bool) {
	name, ok := r.NameOf(client)
	if !ok {
		return "", false
	}
	delete(r.users, name)
	return name, true
}

func (r *Registry) SetPendingOffer(name string, offer json.RawMessage) bool {
	e, ok := r.users[name]
	if !ok {
		return false
	}
	e.pendingOffer = offer
	return true
}

func (r *Registry) TakePendingOffer(name string) (json.RawMessage, bool) {
	e, ok := r.users[name]
	if !ok || e.pendingOffer == nil {
		return nil, false
	}
	offer := e.pendingOffer
	e.pendingOffer = nil
	return offer, true
}

func (r *Registry) Snapshot() map[string]domain.UserInfo {
	snap := make(map[string]domain.UserInfo, len(r.users))
	for name, e := range r.users {
		snap[name] = domain.UserInfo{
			Username:     name,
			ConnectionID: e.client.ID(),
		}
	}
	return snap
}
