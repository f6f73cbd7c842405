package amqp

import (
	"context"
	"errors"
	"testing"
)

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }

func (f *fakeAck) Nack(_, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func TestMessageJSONRoundTrip(t *testing.T) {
	msg := NewCollectionSavedMessage("expense_prefs", "expenses", 3, 25550)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := CollectionSavedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Namespace != "expense_prefs" || got.Key != "expenses" || got.Count != 3 || got.TotalCents != 25550 || !got.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestSettle(t *testing.T) {
	valid, _ := NewCollectionSavedMessage("ns", "k", 1, 100).ToJSON()

	tests := []struct {
		name       string
		body       []byte
		handlerErr error
		wantAck    bool
		wantNack   bool
		wantQueue  bool
	}{
		{name: "success acks", body: valid, wantAck: true},
		{name: "handler error requeues", body: valid, handlerErr: errors.New("mirror down"), wantNack: true, wantQueue: true},
		{name: "bad json is rejected", body: []byte("{not json"), wantNack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAck{}
			called := false
			settle(context.Background(), tt.body, ack, func(_ context.Context, m *CollectionSavedMessage) error {
				called = true
				if m.Namespace != "ns" {
					t.Errorf("unexpected namespace %q", m.Namespace)
				}
				return tt.handlerErr
			})
			if ack.acked != tt.wantAck || ack.nacked != tt.wantNack || ack.requeued != tt.wantQueue {
				t.Errorf("got ack=%v nack=%v requeue=%v", ack.acked, ack.nacked, ack.requeued)
			}
			if tt.name == "bad json is rejected" && called {
				t.Errorf("handler must not run for undecodable messages")
			}
		})
	}
}
