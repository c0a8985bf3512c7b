package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"Pongside/internal/config"
	"Pongside/internal/handlers"
	"Pongside/internal/room"
	"Pongside/internal/routes"
	"Pongside/internal/services"
	"Pongside/internal/tournament"
)

func main() {
	cfg := config.Load()

	db := initDB(cfg.DatabaseURL)
	defer db.Close()

	store := services.NewPostgresMatchStore(db)
	registry := room.NewRegistry(room.Config{
		Mode:       cfg.Mode,
		ScoreToWin: cfg.ScoreToWin,
		Store:      store,
	})

	handler := &handlers.Handler{
		DB:          db,
		Secret:      []byte(cfg.Secret),
		Registry:    registry,
		Tournaments: tournament.NewManager(),
		Store:       store,
	}

	r := gin.Default()
	routes.PublicRoutes(r, handler)
	routes.ProtectedRoutes(r, handler)

	port := ":" + cfg.Port
	fmt.Printf("Server running at http://localhost%s\n", port)
	r.Run(port)
}

func initDB(connStr string) *sql.DB {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Println("Database migrations applied successfully.")

	return db
}
