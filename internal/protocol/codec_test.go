package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClientPaddlePosition(t *testing.T) {
	raw := []byte(`{"type":"game","data":{"type":"paddlePosition","position":{"x":-1.5,"y":13.5}}}`)

	env, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, ChannelGame, env.Type)

	tag, err := PayloadType(env)
	require.NoError(t, err)
	require.Equal(t, TypePaddlePosition, tag)

	pos, err := DecodePayload[PaddlePosition](env)
	require.NoError(t, err)
	assert.Equal(t, -1.5, pos.Position.X)
	assert.Equal(t, 13.5, pos.Position.Y)
}

func TestDecodeEnvelopeErrors(t *testing.T) {
	_, err := DecodeEnvelope(nil)
	assert.Error(t, err)

	_, err = DecodeEnvelope([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestPayloadTypeRequiresTag(t *testing.T) {
	env := Envelope{Type: ChannelGame, Data: json.RawMessage(`{"position":{"x":0,"y":0}}`)}
	_, err := PayloadType(env)
	assert.Error(t, err)
}

func TestGameStartedWireShape(t *testing.T) {
	env := NewGameStarted(2)
	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"game","data":{"type":"gameStarted","id":2}}`, string(b))
}

func TestChatEnvelopePassesThrough(t *testing.T) {
	env, err := Encode(ChannelChat, map[string]string{"message": "gg"})
	require.NoError(t, err)
	assert.Equal(t, ChannelChat, env.Type)
	assert.JSONEq(t, `{"message":"gg"}`, string(env.Data))
}
