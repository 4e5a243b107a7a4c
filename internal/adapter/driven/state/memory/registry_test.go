package memory

import (
	"encoding/json"
	"testing"
)

type stubClient struct {
	id string
}

func (c *stubClient) ID() string                     { return c.id }
func (c *stubClient) Send(event string, v any) error { return nil }
func (c *stubClient) Close() error                   { return nil }

func TestRegisterLastWriterWins(t *testing.T) {
	r := NewRegistry()
	first := &stubClient{id: "conn-1"}
	second := &stubClient{id: "conn-2"}

	r.Register("alice", first)
	r.Register("alice", second)

	got, ok := r.Lookup("alice")
	if !ok {
		t.Fatal("alice not registered")
	}
	if got != second {
		t.Errorf("Lookup returned %v, want the most recent binding", got.ID())
	}

	snap := r.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot has %d entries, want 1", len(snap))
	}
	if snap["alice"].ConnectionID != "conn-2" {
		t.Errorf("snapshot connection id = %q, want conn-2", snap["alice"].ConnectionID)
	}
}

func TestRegisterEmptyNameIgnored(t *testing.T) {
	r := NewRegistry()
	r.Register("", &stubClient{id: "conn-1"})

	if len(r.Snapshot()) != 0 {
		t.Error("empty name must not be registered")
	}
}

func TestRegisterOverwriteDiscardsPendingOffer(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", &stubClient{id: "conn-1"})
	r.SetPendingOffer("alice", json.RawMessage(`{"sdp":"v=0"}`))

	r.Register("alice", &stubClient{id: "conn-2"})

	if _, ok := r.TakePendingOffer("alice"); ok {
		t.Error("re-registering must discard the old pending offer")
	}
}

func TestUnregisterByConnection(t *testing.T) {
	r := NewRegistry()
	alice := &stubClient{id: "conn-1"}
	bob := &stubClient{id: "conn-2"}
	r.Register("alice", alice)
	r.Register("bob", bob)

	name, ok := r.Unregister(alice)
	if !ok || name != "alice" {
		t.Fatalf("Unregister = (%q, %v), want (alice, true)", name, ok)
	}
	if _, ok := r.Lookup("alice"); ok {
		t.Error("alice still resolvable after unregister")
	}
	if _, ok := r.Lookup("bob"); !ok {
		t.Error("bob must survive alice's unregister")
	}

	if _, ok := r.Unregister(alice); ok {
		t.Error("second unregister of the same connection must report false")
	}
}

func TestPendingOfferTakeClears(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", &stubClient{id: "conn-1"})

	if ok := r.SetPendingOffer("nobody", json.RawMessage(`{}`)); ok {
		t.Error("SetPendingOffer on unknown name must fail")
	}
	if ok := r.SetPendingOffer("alice", json.RawMessage(`{"sdp":"v=0"}`)); !ok {
		t.Fatal("SetPendingOffer failed")
	}

	offer, ok := r.TakePendingOffer("alice")
	if !ok {
		t.Fatal("TakePendingOffer found nothing")
	}
	if string(offer) != `{"sdp":"v=0"}` {
		t.Errorf("offer = %s", offer)
	}

	if _, ok := r.TakePendingOffer("alice"); ok {
		t.Error("pending offer must be cleared after take")
	}
}

func TestSnapshotExcludesHandles(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", &stubClient{id: "conn-1"})
	r.SetPendingOffer("alice", json.RawMessage(`{"sdp":"secret"}`))

	raw, err := json.Marshal(r.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"alice":{"username":"alice","id":"conn-1"}}`
	if string(raw) != want {
		t.Errorf("snapshot = %s, want %s", raw, want)
	}
}
