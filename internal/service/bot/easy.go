package bot

import (
	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

const (
	EASY_WIN_CHANCE    = 0.8
	EASY_BLOCK_CHANCE  = 0.5
	EASY_CENTER_CHANCE = 0.3
)

// easyMove plays deliberately fallible: it sometimes misses its own win,
// often misses blocks, and otherwise plays randomly with a soft center
// preference.
func (e *Engine) easyMove(req MoveRequest) int {
	validMoves := domain.GetValidMoves(req.Board)
	if len(validMoves) == 0 {
		return -1
	}

	opponent := req.AIMark.Opponent()

	if move := FindWinningMove(req.Board, req.AIMark); move != -1 && e.rng.Float64() < EASY_WIN_CHANCE {
		return move
	}
	if move := FindWinningMove(req.Board, opponent); move != -1 && e.rng.Float64() < EASY_BLOCK_CHANCE {
		return move
	}
	if req.Board[domain.CenterCell] == domain.Empty && e.rng.Float64() < EASY_CENTER_CHANCE {
		return domain.CenterCell
	}

	return validMoves[e.rng.Intn(len(validMoves))]
}
