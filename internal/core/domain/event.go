package domain

// Wire event names. These are normative for browser interop and must not be
// renamed.
const (
	EventJoinUser     = "join-user"
	EventJoined       = "joined"
	EventOffer        = "offer"
	EventAuthRequest  = "auth-request"
	EventAuthAck      = "auth-ack"
	EventAnswer       = "answer"
	EventCallRejected = "call-rejected"
	EventICECandidate = "icecandidate"
	EventCallEnded    = "call-ended"
	// EventEndCall is a reserved client path: the reference client never sends
	// it, but the relay keeps the route for protocol compatibility.
	EventEndCall = "end-call"
	EventError   = "error"
)
