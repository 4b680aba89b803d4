package bot

import (
	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

const (
	LIMITED_LOOKAHEAD_DEPTH = 2
	LIMITED_WIN_SCORE       = 1000
)

// LimitedSearch picks moves for the three-piece variant. Eviction means the
// board never fills up, so the search bottoms out on the positional heuristic
// after a fixed two-ply lookahead instead of exhaustive terminal search.
type LimitedSearch struct{}

func NewLimitedSearch() *LimitedSearch {
	return &LimitedSearch{}
}

// BestMove returns the strongest placement for aiMark, or -1 when the board
// has no empty cell. Candidates are simulated exactly like real gameplay:
// a mover already holding three pieces evicts its oldest piece.
func (s *LimitedSearch) BestMove(board domain.Board, aiMark domain.Mark, aiHistory, oppHistory domain.PieceHistory) int {
	validMoves := domain.GetValidMoves(board)
	if len(validMoves) == 0 {
		return -1
	}

	opponent := aiMark.Opponent()

	if move := FindWinningMove(board, aiMark); move != -1 {
		return move
	}
	if move := FindWinningMove(board, opponent); move != -1 {
		return move
	}

	// A plain placement still has the full board to shape; prefer structure
	// before falling back to lookahead. A full hand goes straight to the
	// eviction-aware search.
	if !aiHistory.AtCap() {
		if move := FindForkMove(board, aiMark); move != -1 {
			return move
		}
		if move := FindForkMove(board, opponent); move != -1 {
			return move
		}
		if board[domain.CenterCell] == domain.Empty {
			return domain.CenterCell
		}
	}

	bestMove := validMoves[0]
	bestScore := -(LIMITED_WIN_SCORE * 2)
	for _, cell := range validMoves {
		nextBoard := domain.CopyBoard(board)
		nextAI := domain.CopyHistory(aiHistory)
		nextOpp := domain.CopyHistory(oppHistory)
		if _, err := domain.ApplyMove(nextBoard, &nextAI, cell, aiMark, domain.VariantLimited); err != nil {
			continue
		}
		score := s.lookahead(nextBoard, aiMark, nextAI, nextOpp, 1, false)
		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	return bestMove
}

// lookahead alternates the mover each ply, maximizing for aiMark and
// minimizing for the opponent, and scores leaves with the positional
// heuristic.
func (s *LimitedSearch) lookahead(board domain.Board, aiMark domain.Mark, aiHistory, oppHistory domain.PieceHistory, depth int, isMaximizing bool) int {
	opponent := aiMark.Opponent()

	if domain.CheckWin(board, aiMark) {
		return LIMITED_WIN_SCORE - depth
	}
	if domain.CheckWin(board, opponent) {
		return -(LIMITED_WIN_SCORE - depth)
	}
	if depth >= LIMITED_LOOKAHEAD_DEPTH {
		return EvaluateLimitedPosition(board, aiMark, aiHistory, oppHistory)
	}

	validMoves := domain.GetValidMoves(board)
	if len(validMoves) == 0 {
		return EvaluateLimitedPosition(board, aiMark, aiHistory, oppHistory)
	}

	if isMaximizing {
		best := -(LIMITED_WIN_SCORE * 2)
		for _, cell := range validMoves {
			nextBoard := domain.CopyBoard(board)
			nextAI := domain.CopyHistory(aiHistory)
			nextOpp := domain.CopyHistory(oppHistory)
			if _, err := domain.ApplyMove(nextBoard, &nextAI, cell, aiMark, domain.VariantLimited); err != nil {
				continue
			}
			score := s.lookahead(nextBoard, aiMark, nextAI, nextOpp, depth+1, false)
			if score > best {
				best = score
			}
		}
		return best
	}

	worst := LIMITED_WIN_SCORE * 2
	for _, cell := range validMoves {
		nextBoard := domain.CopyBoard(board)
		nextAI := domain.CopyHistory(aiHistory)
		nextOpp := domain.CopyHistory(oppHistory)
		if _, err := domain.ApplyMove(nextBoard, &nextOpp, cell, opponent, domain.VariantLimited); err != nil {
			continue
		}
		score := s.lookahead(nextBoard, aiMark, nextAI, nextOpp, depth+1, true)
		if score < worst {
			worst = score
		}
	}
	return worst
}
