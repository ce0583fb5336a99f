package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire frame for every message in both directions: a topic
// string plus a topic-specific payload object.
type Envelope struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Marshal builds a wire frame for the given topic and payload.
func Marshal(topic string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload for %s: %w", topic, err)
	}
	return json.Marshal(Envelope{Topic: topic, Payload: raw})
}

// Unmarshal parses a wire frame. The payload stays raw until the topic is
// dispatched; callers decode it with DecodeInbound or their own types.
func Unmarshal(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Topic == "" {
		return Envelope{}, fmt.Errorf("envelope missing topic")
	}
	return env, nil
}
