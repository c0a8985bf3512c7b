package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope wraps every message in both directions. Data stays raw until the
// receiver knows which variant to decode.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// head is the minimal decode needed to pick a game payload variant.
type head struct {
	Type string `json:"type"`
}

// Encode builds an envelope around a payload that already carries its own
// variant tag.
func Encode(channel string, payload any) (Envelope, error) {
	if channel == "" {
		return Envelope{}, fmt.Errorf("encode: empty channel")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: channel, Data: b}, nil
}

// DecodeEnvelope parses the outer envelope only.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// PayloadType peeks at the variant tag of a game-channel payload.
func PayloadType(e Envelope) (string, error) {
	var h head
	if err := json.Unmarshal(e.Data, &h); err != nil {
		return "", err
	}
	if h.Type == "" {
		return "", fmt.Errorf("decode: payload has no type tag")
	}
	return h.Type, nil
}

// DecodePayload unmarshals a game-channel payload into its variant struct.
func DecodePayload[T any](e Envelope) (T, error) {
	var out T
	if len(e.Data) == 0 {
		return out, fmt.Errorf("decode: empty payload on %q envelope", e.Type)
	}
	err := json.Unmarshal(e.Data, &out)
	return out, err
}

// mustGame wraps a server-built payload; these are static shapes, so a
// marshal failure is a programming error.
func mustGame(payload any) Envelope {
	e, err := Encode(ChannelGame, payload)
	if err != nil {
		panic(err)
	}
	return e
}
