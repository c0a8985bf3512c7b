// Package auth is the identity collaborator: it turns a signed token into a
// stable player identity before the core ever sees a connection.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

type Claims struct {
	ID       string
	Username string
}

// IssueToken signs a session token for the given identity.
func IssueToken(secret []byte, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       claims.ID,
		"username": claims.Username,
		"exp":      time.Now().Add(time.Hour * 24 * 365).Unix(),
	})
	return token.SignedString(secret)
}

// JwtAuthMiddleware validates the Authorization cookie or header and stores
// the parsed claims on the context.
func JwtAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			slog.Error("Error validating token", "error", fmt.Sprint(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("claims", token.Claims.(jwt.MapClaims))
		c.Next()
	}
}

// GetClaims pulls the validated claims back out of the context.
func GetClaims(c *gin.Context) (Claims, error) {
	claimsValue, ok := c.Get("claims")
	if !ok {
		return Claims{}, fmt.Errorf("no claims on context")
	}
	mapClaims, ok := claimsValue.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("unexpected claims type")
	}

	id, _ := mapClaims["id"].(string)
	username, _ := mapClaims["username"].(string)
	if id == "" {
		return Claims{}, fmt.Errorf("claims missing id")
	}
	return Claims{ID: id, Username: username}, nil
}

func bearerToken(c *gin.Context) string {
	if cookie, err := c.Cookie("Authorization"); err == nil && cookie != "" {
		return strings.TrimPrefix(cookie, "Bearer ")
	}
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
