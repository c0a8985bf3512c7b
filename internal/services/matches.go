package services

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// MatchRecord is one completed match. Winner is "A", "B", or "draw"; the
// first-to-N scoring rule cannot currently produce a draw, but the schema
// allows it.
type MatchRecord struct {
	UUID        string    `json:"uuid"`
	PlayerAUUID string    `json:"player_a_uuid"`
	PlayerBUUID string    `json:"player_b_uuid"`
	ScoreA      int       `json:"score_a"`
	ScoreB      int       `json:"score_b"`
	Winner      string    `json:"winner"`
	Mode        string    `json:"mode"`
	Date        time.Time `json:"date"`
}

// MatchStore is the storage sink a room persists finished matches to.
type MatchStore interface {
	SaveMatch(ctx context.Context, m MatchRecord) error
}

// PostgresMatchStore writes match history to the matches table.
type PostgresMatchStore struct {
	DB *sql.DB
}

func NewPostgresMatchStore(db *sql.DB) *PostgresMatchStore {
	return &PostgresMatchStore{DB: db}
}

func (s *PostgresMatchStore) SaveMatch(ctx context.Context, m MatchRecord) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO matches (uuid, player_a_uuid, player_b_uuid, score_a, score_b, winner, mode, date) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		m.UUID, m.PlayerAUUID, m.PlayerBUUID, m.ScoreA, m.ScoreB, m.Winner, m.Mode, m.Date)
	if err != nil {
		slog.Error("Error inserting match record", "error", err.Error(), "match", m.UUID)
	}
	return err
}

// RecentMatches returns the newest completed matches, most recent first.
func (s *PostgresMatchStore) RecentMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT uuid, player_a_uuid, player_b_uuid, score_a, score_b, winner, mode, date FROM matches ORDER BY date DESC LIMIT $1", limit)
	if err != nil {
		slog.Error("Error querying recent matches", "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var m MatchRecord
		if err := rows.Scan(&m.UUID, &m.PlayerAUUID, &m.PlayerBUUID, &m.ScoreA, &m.ScoreB, &m.Winner, &m.Mode, &m.Date); err != nil {
			slog.Error("Error scanning match record", "error", err.Error())
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}
