package routes

import (
	"Pongside/internal/auth"
	"Pongside/internal/handlers"

	"github.com/gin-gonic/gin"
)

func ProtectedRoutes(r *gin.Engine, handler *handlers.Handler) {
	protected := r.Group("/").Use(auth.JwtAuthMiddleware(handler.Secret))

	// Game socket: matchmaking, paddle input, and per-tick state all flow
	// over this one channel.
	protected.GET("/ws/play", handler.WsHandler)

	// Match history
	protected.GET("/matches/recent", handler.RecentMatches)

	// Tournament handlers
	protected.GET("/tournaments", handler.ListTournaments)
	protected.POST("/tournaments", handler.CreateTournament)
	protected.POST("/tournaments/:tournamentID/join", handler.JoinTournament)
	protected.POST("/tournaments/:tournamentID/leave", handler.LeaveTournament)
	protected.POST("/tournaments/:tournamentID/close", handler.CloseTournament)
	protected.GET("/tournaments/:tournamentID/bracket", handler.GetBracket)
}
