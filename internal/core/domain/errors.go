package domain

import "errors"

var (
	// ErrUnknownRecipient means the target name is not in the registry.
	ErrUnknownRecipient = errors.New("unknown recipient")
	// ErrNoPendingOffer means an accepted auth-ack found no stored offer.
	ErrNoPendingOffer = errors.New("no pending offer")
	// ErrInvalidTransition means the event is not legal in the session's phase.
	ErrInvalidTransition = errors.New("invalid phase transition")
	// ErrSessionExists means a party is already in a call.
	ErrSessionExists = errors.New("identity already in a call")
	// ErrNoSession means no session exists for the addressed pair.
	ErrNoSession = errors.New("no active session")
)

// ErrorCode maps a relay error onto the wire-level error code sent to clients
// when strict errors are enabled.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownRecipient):
		return "unknown-recipient"
	case errors.Is(err, ErrNoPendingOffer):
		return "no-pending-offer"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid-transition"
	case errors.Is(err, ErrSessionExists):
		return "busy"
	case errors.Is(err, ErrNoSession):
		return "no-session"
	}
	return "bad-request"
}
