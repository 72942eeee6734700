package kafka

import (
	"testing"
)

func TestNewProducer(t *testing.T) {
	cfg := Config{
		Brokers:       []string{"localhost:9092", "localhost:9093"},
		ConsumerGroup: "riskd-test",
		TLS:           false,
	}

	p, err := NewProducer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.brokers[0] != "localhost:9092" {
		t.Errorf("expected broker localhost:9092, got %s", p.brokers[0])
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if p.transport != nil {
		t.Error("expected nil transport without TLS or SASL")
	}
}

func TestNewProducerTLSTransport(t *testing.T) {
	cfg := Config{
		Brokers: []string{"kafka:9093"},
		TLS:     true,
	}

	p, err := NewProducer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.transport == nil {
		t.Fatal("expected transport when TLS is enabled")
	}
	if p.transport.TLS == nil {
		t.Error("expected TLS config on transport")
	}
	if p.transport.SASL != nil {
		t.Error("expected no SASL mechanism without SASLEnabled")
	}
}

func TestMessageConstruction(t *testing.T) {
	msg := Message{
		Key:   []byte("txn-123"),
		Value: []byte(`{"risk_score":0.91}`),
		Headers: map[string]string{
			"event_type":     "risk.verdict.recorded",
			"correlation-id": "abc-def-ghi",
		},
	}

	if string(msg.Key) != "txn-123" {
		t.Errorf("expected key txn-123, got %s", string(msg.Key))
	}
	if string(msg.Value) != `{"risk_score":0.91}` {
		t.Errorf("unexpected value: %s", string(msg.Value))
	}
	if len(msg.Headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(msg.Headers))
	}
	if msg.Headers["event_type"] != "risk.verdict.recorded" {
		t.Errorf("unexpected event_type header: %s", msg.Headers["event_type"])
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	cfg := Config{
		Brokers: []string{"localhost:9092"},
	}
	p, err := NewProducer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w1 := p.getOrCreateWriter("risk.events")
	if w1 == nil {
		t.Fatal("expected non-nil writer")
	}

	// Same topic should return the same writer instance.
	w2 := p.getOrCreateWriter("risk.events")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	// Different topic should return a different writer.
	w3 := p.getOrCreateWriter("risk.transactions")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}

	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	cfg := Config{
		Brokers: []string{"localhost:9092"},
	}
	p, err := NewProducer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = p.getOrCreateWriter("risk.events")
	_ = p.getOrCreateWriter("risk.transactions")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}

	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}

func TestNewProducerUnsupportedSASL(t *testing.T) {
	cfg := Config{
		Brokers:       []string{"kafka:9093"},
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-1",
	}

	p, err := NewProducer(cfg)
	if err == nil {
		t.Fatal("expected error for unsupported SASL mechanism")
	}
	if p != nil {
		t.Error("expected nil producer when the SASL mechanism cannot be built")
	}
}

func TestResolveSASLMechanisms(t *testing.T) {
	cases := []struct {
		mechanism string
		wantErr   bool
	}{
		{"PLAIN", false},
		{"", false},
		{"SCRAM-SHA-256", false},
		{"SCRAM-SHA-512", false},
		{"GSSAPI", true},
	}

	for _, tc := range cases {
		cfg := Config{
			SASLMechanism: tc.mechanism,
			SASLUsername:  "svc-riskd",
			SASLPassword:  "secret",
		}
		got, err := resolveSASL(cfg)
		if tc.wantErr {
			if err == nil {
				t.Errorf("mechanism %q: expected error, got %T", tc.mechanism, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("mechanism %q: unexpected error: %v", tc.mechanism, err)
		}
		if got == nil {
			t.Errorf("mechanism %q: expected mechanism, got nil", tc.mechanism)
		}
	}
}
