package routes

import (
	"Pongside/internal/handlers"

	"github.com/gin-gonic/gin"
)

func PublicRoutes(r *gin.Engine, handler *handlers.Handler) {
	r.GET("/ping", handler.PingHandler)

	// Issue a session token; credential verification is out of scope.
	r.POST("/auth/login", handler.Login)
}
