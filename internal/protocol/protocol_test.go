package protocol

import (
	"errors"
	"testing"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	data, err := Marshal(TopicBuzzerStatus, BuzzerStatus{Active: true})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	env, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if env.Topic != TopicBuzzerStatus {
		t.Fatalf("topic = %q, want %q", env.Topic, TopicBuzzerStatus)
	}
}

func TestUnmarshalRejectsMissingTopic(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"payload":{}}`)); err == nil {
		t.Fatal("envelope without topic accepted")
	}
	if _, err := Unmarshal([]byte(`not json`)); err == nil {
		t.Fatal("malformed envelope accepted")
	}
}

func TestDecodeInboundUnknownTopic(t *testing.T) {
	_, err := DecodeInbound(Envelope{Topic: "com.sc2ctl.jeopardy.nonsense"})
	if !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("err = %v, want ErrUnknownTopic", err)
	}
}

func TestDecodeInboundValidates(t *testing.T) {
	env := Envelope{Topic: TopicRegisterPlayer, Payload: []byte(`{"name":""}`)}
	if _, err := DecodeInbound(env); err == nil {
		t.Fatal("empty registration name accepted")
	}

	env = Envelope{Topic: TopicRegisterPlayer, Payload: []byte(`{"name":"alice"}`)}
	payload, err := DecodeInbound(env)
	if err != nil {
		t.Fatalf("valid registration rejected: %v", err)
	}
	reg, ok := payload.(*RegisterPlayer)
	if !ok || reg.Name != "alice" {
		t.Fatalf("payload = %#v, want RegisterPlayer alice", payload)
	}
}

func TestDecodeInboundWagerBounds(t *testing.T) {
	env := Envelope{Topic: TopicDailyDoubleBet, Payload: []byte(`{"contestant":"bob","bet":0}`)}
	if _, err := DecodeInbound(env); err == nil {
		t.Fatal("zero daily double wager accepted")
	}

	env = Envelope{Topic: TopicFinalJeopardyBet, Payload: []byte(`{"contestant":"bob","bet":-5}`)}
	if _, err := DecodeInbound(env); err == nil {
		t.Fatal("negative final bet accepted")
	}

	env = Envelope{Topic: TopicFinalJeopardyBet, Payload: []byte(`{"contestant":"bob","bet":0}`)}
	if _, err := DecodeInbound(env); err != nil {
		t.Fatalf("zero final bet rejected: %v", err)
	}
}

func TestDecodeInboundMalformedPayload(t *testing.T) {
	env := Envelope{Topic: TopicAudioComplete, Payload: []byte(`{"audio_id":42}`)}
	if _, err := DecodeInbound(env); err == nil {
		t.Fatal("type-mismatched payload accepted")
	}
}
