package port

// Client is a transport-level connection handle. Send is fire-and-forget from
// the relay loop; a failed send is grounds for detaching the client.
type Client interface {
	ID() string
	Send(event string, data any) error
	Close() error
}
