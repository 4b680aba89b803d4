package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// GameResult represents the result of a finished game
type GameResult struct {
	GameID          string
	Variant         string
	Difficulty      string
	HumanMark       string
	WinnerMark      string
	TotalMoves      int
	DurationSeconds int
	CreatedAt       time.Time
	FinishedAt      time.Time
}

// SaveGame records a finished game (UPSERT to handle retried saves).
func (r *GameRepo) SaveGame(result GameResult, boardState []int) error {
	boardJSON, err := json.Marshal(boardState)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %v", err)
	}

	var winner *string
	if result.WinnerMark != "" {
		winner = &result.WinnerMark
	}

	query := `
	INSERT INTO game (game_id, variant, difficulty, human_mark, winner_mark, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_mark = EXCLUDED.winner_mark,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state;
	`
	_, err = r.DB.Exec(query, result.GameID, result.Variant, result.Difficulty, result.HumanMark, winner,
		result.TotalMoves, result.DurationSeconds, result.CreatedAt, result.FinishedAt, boardJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %v", err)
	}
	return nil
}

// RecentGames returns the latest finished games, newest first.
func (r *GameRepo) RecentGames(limit int) ([]GameResult, error) {
	query := `
	SELECT game_id, variant, difficulty, human_mark, winner_mark, total_moves, duration_seconds, created_at, finished_at
	FROM game
	WHERE finished_at IS NOT NULL
	ORDER BY finished_at DESC
	LIMIT $1;
	`

	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent games: %v", err)
	}
	defer rows.Close()

	var games []GameResult
	for rows.Next() {
		var result GameResult
		var winner sql.NullString
		err := rows.Scan(
			&result.GameID,
			&result.Variant,
			&result.Difficulty,
			&result.HumanMark,
			&winner,
			&result.TotalMoves,
			&result.DurationSeconds,
			&result.CreatedAt,
			&result.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %v", err)
		}
		if winner.Valid {
			result.WinnerMark = winner.String
		}
		games = append(games, result)
	}
	return games, nil
}
