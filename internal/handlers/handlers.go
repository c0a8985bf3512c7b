package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"Pongside/internal/auth"
	"Pongside/internal/player"
	"Pongside/internal/room"
	"Pongside/internal/services"
	"Pongside/internal/tournament"
)

type Handler struct {
	DB          *sql.DB
	Secret      []byte
	Registry    *room.Registry
	Tournaments *tournament.Manager
	Store       *services.PostgresMatchStore

	sessions sync.Map // map[string]*player.Player, live sockets only
}

func (h *Handler) PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

type loginRequest struct {
	Username string `json:"username"`
}

// Login issues a session token for a display name. There is no credential
// check here; real identity verification lives outside this service.
func (h *Handler) Login(c *gin.Context) {
	req := loginRequest{}
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Username == "" {
		req.Username = petname.Generate(2, "-")
	}

	claims := auth.Claims{ID: uuid.New().String(), Username: req.Username}
	token, err := auth.IssueToken(h.Secret, claims)
	if err != nil {
		slog.Error("Error signing token", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign in"})
		return
	}

	c.SetCookie("Authorization", "Bearer "+token, 3600*24*365, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"id": claims.ID, "username": claims.Username, "token": token})
}

// RecentMatches returns the newest persisted match results.
func (h *Handler) RecentMatches(c *gin.Context) {
	records, err := h.Store.RecentMatches(c.Request.Context(), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load match history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": records})
}

// sessionPlayer returns the live socket-holding player for an identity when
// one exists, else a detached player record with the same uuid.
func (h *Handler) sessionPlayer(claims auth.Claims) *player.Player {
	if v, ok := h.sessions.Load(claims.ID); ok {
		return v.(*player.Player)
	}
	return player.New(claims.ID, claims.Username, nil)
}
