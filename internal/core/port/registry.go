package port

import (
	"encoding/json"

	"github.com/Wyydra/dial/internal/core/domain"
)

// Registry is the single source of truth for who is online. It is a passive
// store: broadcasting the snapshot after changes is the relay's job.
//
// Implementations are not required to be safe for concurrent use; the relay's
// event loop is the only caller.
type Registry interface {
	// Register binds name to client, overwriting any prior binding
	// (last-writer-wins). An empty name is ignored; callers must guard.
	Register(name string, client Client)

	// Lookup resolves a display name to its live connection.
	Lookup(name string) (Client, bool)

	// NameOf reverse-resolves a connection to its display name.
	NameOf(client Client) (string, bool)

	// Unregister removes the binding for client, if any, and reports the
	// removed name.
	Unregister(client Client) (string, bool)

	// SetPendingOffer stores an in-flight offer on the named caller entry,
	// held until the callee accepts. Reports false if name is not registered.
	SetPendingOffer(name string, offer json.RawMessage) bool

	// TakePendingOffer returns and clears the stored offer.
	TakePendingOffer(name string) (json.RawMessage, bool)

	// Snapshot returns the public view of every registered identity,
	// connection handles excluded.
	Snapshot() map[string]domain.UserInfo
}
