package amqp

import "testing"

func TestTransactionSyncMessageRoundTrip(t *testing.T) {
	msg := NewTransactionSyncMessage(7, 3)
	if msg.ID != 7 || msg.Version != 3 {
		t.Fatalf("message = %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := TransactionSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != 7 || back.Version != 3 {
		t.Errorf("round trip = %+v", back)
	}
	if !back.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("timestamp round trip = %v vs %v", back.Timestamp, msg.Timestamp)
	}
}

func TestTransactionDeleteMessageRoundTrip(t *testing.T) {
	msg := NewTransactionDeleteMessage(9)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := TransactionDeleteMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != 9 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TransactionSyncMessageFromJSON([]byte("{oops")); err == nil {
		t.Error("expected unmarshal error")
	}
	if _, err := TransactionDeleteMessageFromJSON([]byte("{oops")); err == nil {
		t.Error("expected unmarshal error")
	}
}
