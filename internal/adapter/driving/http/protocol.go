package http

import "encoding/json"

// Envelope is the wire frame exchanged with browser clients: an event name
// plus an event-specific payload the relay decodes.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}
