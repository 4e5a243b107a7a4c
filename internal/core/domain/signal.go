package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Signal payloads. Field names match the browser protocol; the relay never
// inspects session descriptions or ICE candidates, so those stay raw JSON.

type OfferSignal struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Offer json.RawMessage `json:"offer"`
}

func (s OfferSignal) Validate() error {
	if s.From == "" || s.To == "" {
		return errors.New("offer: missing from/to")
	}
	if len(s.Offer) == 0 {
		return errors.New("offer: missing session description")
	}
	return nil
}

type AnswerSignal struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Answer json.RawMessage `json:"answer"`
}

func (s AnswerSignal) Validate() error {
	if s.From == "" || s.To == "" {
		return errors.New("answer: missing from/to")
	}
	if len(s.Answer) == 0 {
		return errors.New("answer: missing session description")
	}
	return nil
}

// AuthRequest tells the callee that someone is ringing them.
type AuthRequest struct {
	From string `json:"from"`
}

// AuthAck is the callee's accept/reject decision. From and To name the
// original caller and callee, not the sender.
type AuthAck struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Accepted bool   `json:"accepted"`
}

func (a AuthAck) Validate() error {
	if a.From == "" || a.To == "" {
		return errors.New("auth-ack: missing from/to")
	}
	return nil
}

type CallRejected struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type EndCall struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CallEnded is the ordered [from, to] pair carried by call-ended events. It
// travels as a two-element JSON array, matching the browser client.
type CallEnded struct {
	From string
	To   string
}

func (c CallEnded) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.From, c.To})
}

func (c *CallEnded) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("call-ended: %w", err)
	}
	c.From, c.To = pair[0], pair[1]
	return nil
}

// ErrorInfo is sent back to the offending sender when strict errors are on.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
