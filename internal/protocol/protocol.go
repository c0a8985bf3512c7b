// Package protocol defines the JSON message envelope shared by the game and
// chat channels, and the game-channel payload variants.
package protocol

import "Pongside/internal/game"

// Channels carried by the envelope. Chat payloads are relayed opaquely; only
// the envelope format is shared with the chat collaborator.
const (
	ChannelGame = "game"
	ChannelChat = "chat"
)

// Game payload tags (data.type).
const (
	TypeGameStarted    = "gameStarted"
	TypeGameData       = "gameData"
	TypeGameResult     = "gameResult"
	TypeDisconnection  = "disconnection"
	TypePaddlePosition = "paddlePosition"
	TypeSkinID         = "skinId"
	TypeMatchmaking    = "matchmaking"
)

// GameStarted tells the recipient which paddle they control.
type GameStarted struct {
	Type string `json:"type"`
	ID   int    `json:"id"`
}

// GameData is the full simulation snapshot broadcast each tick.
type GameData struct {
	Type string    `json:"type"`
	Data game.Data `json:"data"`
}

// GameResult is terminal: the winning paddle index.
type GameResult struct {
	Type   string `json:"type"`
	Winner int    `json:"winner"`
}

// Disconnection is sent to the surviving player on a forfeit.
type Disconnection struct {
	Type string `json:"type"`
}

// PaddlePosition reports a client's local paddle position, trusted as-is.
type PaddlePosition struct {
	Type     string       `json:"type"`
	Position game.Vector2 `json:"position"`
}

// SkinID is cosmetic only.
type SkinID struct {
	Type   string `json:"type"`
	ID     int    `json:"id"`
	SkinID string `json:"skinId"`
}

// Matchmaking enters the sender into matchmaking with a display name.
type Matchmaking struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

func NewGameStarted(id int) Envelope {
	return mustGame(GameStarted{Type: TypeGameStarted, ID: id})
}

func NewGameData(d game.Data) Envelope {
	return mustGame(GameData{Type: TypeGameData, Data: d})
}

func NewGameResult(winner int) Envelope {
	return mustGame(GameResult{Type: TypeGameResult, Winner: winner})
}

func NewDisconnection() Envelope {
	return mustGame(Disconnection{Type: TypeDisconnection})
}

func NewSkinID(id int, skinID string) Envelope {
	return mustGame(SkinID{Type: TypeSkinID, ID: id, SkinID: skinID})
}
