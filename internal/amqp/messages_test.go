package amqp

import (
	"testing"
	"time"
)

func TestLedgerSyncMessageRoundTrip(t *testing.T) {
	msg := NewLedgerSyncMessage("2025")
	if msg.Year != "2025" {
		t.Fatalf("year = %q, want 2025", msg.Year)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	got, err := LedgerSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if got.Year != msg.Year || !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, msg)
	}
}

func TestLedgerSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := LedgerSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
}
