package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Pongside/internal/auth"
	"Pongside/internal/tournament"
)

type createTournamentRequest struct {
	Name           string `json:"name"`
	MaxPlayerCount int    `json:"maxPlayerCount"`
	ScoreToWin     int    `json:"scoreToWin"`
}

type tournamentSummary struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	IsClosed    bool   `json:"isClosed"`
}

func summarize(t *tournament.Tournament) tournamentSummary {
	return tournamentSummary{
		UUID:        t.UUID,
		Name:        t.Name,
		Owner:       t.Owner.Username(),
		PlayerCount: t.PlayerCount,
		MaxPlayers:  t.Settings.MaxPlayerCount,
		IsClosed:    t.IsClosed,
	}
}

func (h *Handler) CreateTournament(c *gin.Context) {
	claims, err := auth.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := createTournamentRequest{}
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	settings := tournament.Settings{MaxPlayerCount: req.MaxPlayerCount, ScoreToWin: req.ScoreToWin}
	t := h.Tournaments.CreateNewTournament(req.Name, h.sessionPlayer(claims), settings)
	if t == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "invalid settings or you already own a tournament"})
		return
	}
	c.JSON(http.StatusCreated, summarize(t))
}

func (h *Handler) ListTournaments(c *gin.Context) {
	all := h.Tournaments.List()
	out := make([]tournamentSummary, 0, len(all))
	for _, t := range all {
		out = append(out, summarize(t))
	}
	c.JSON(http.StatusOK, gin.H{"tournaments": out})
}

func (h *Handler) JoinTournament(c *gin.Context) {
	claims, err := auth.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("tournamentID")
	if h.Tournaments.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tournament not found"})
		return
	}
	if !h.Tournaments.AddPlayerToTournament(id, h.sessionPlayer(claims)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not join tournament"})
		return
	}
	c.JSON(http.StatusOK, summarize(h.Tournaments.Get(id)))
}

func (h *Handler) LeaveTournament(c *gin.Context) {
	claims, err := auth.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("tournamentID")
	if h.Tournaments.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tournament not found"})
		return
	}
	if !h.Tournaments.RemovePlayerFromTournament(id, h.sessionPlayer(claims)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not leave tournament"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "left tournament"})
}

func (h *Handler) CloseTournament(c *gin.Context) {
	claims, err := auth.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("tournamentID")
	t := h.Tournaments.Get(id)
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tournament not found"})
		return
	}
	if t.Owner.UUID != claims.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can close a tournament"})
		return
	}
	if !h.Tournaments.CloseTournament(id, h.sessionPlayer(claims)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not close tournament"})
		return
	}
	c.JSON(http.StatusOK, summarize(t))
}

type bracketNode struct {
	Username *string `json:"username"`
	UUID     *string `json:"uuid"`
	IsBot    bool    `json:"isBot"`
	Leaf     bool    `json:"leaf"`
}

// GetBracket returns the bracket as an in-order walk of the tree.
func (h *Handler) GetBracket(c *gin.Context) {
	t := h.Tournaments.Get(c.Param("tournamentID"))
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tournament not found"})
		return
	}
	if !t.Tree.Generated() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bracket not generated yet"})
		return
	}

	var nodes []bracketNode
	t.Tree.Walk(func(n *tournament.MatchNode) {
		node := bracketNode{Leaf: n.Left == nil && n.Right == nil}
		if n.Player != nil {
			username := n.Player.Username()
			node.Username = &username
			node.UUID = &n.Player.UUID
			node.IsBot = n.Player.IsBot
		}
		nodes = append(nodes, node)
	})
	c.JSON(http.StatusOK, gin.H{"bracket": nodes})
}
