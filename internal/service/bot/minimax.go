package bot

import (
	"sync"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

const (
	MINIMAX_WIN_BASE = 10 // terminal score is +/-(10 - depth), biasing fast wins
	MINIMAX_MEMO_CAP = 1000
)

type memoKey struct {
	board      string
	maximizing bool
	depth      int
}

// ExactSearch solves classic-variant positions with minimax, alpha-beta
// pruning and a bounded memo table. The memo is a performance cache only:
// clearing it never changes the chosen move. One instance is shared by all
// request goroutines; mu serializes full searches so they never mutate the
// memo concurrently.
type ExactSearch struct {
	mu   sync.Mutex
	memo map[memoKey]int
}

func NewExactSearch() *ExactSearch {
	return &ExactSearch{memo: make(map[memoKey]int)}
}

// BestMove returns a minimax-optimal move for aiMark, or -1 on a full board.
func (s *ExactSearch) BestMove(board domain.Board, aiMark domain.Mark) int {
	return s.BestMoveWithCounter(board, aiMark, nil)
}

// BestMoveWithCounter runs the short-circuit ladder (win, block, adaptive
// counter, fork, fork block, center) before falling back to full search.
// counter is the difficulty-gated opponent-model suggestion; it may be nil
// and must return -1 when it has nothing.
func (s *ExactSearch) BestMoveWithCounter(board domain.Board, aiMark domain.Mark, counter func(domain.Board) int) int {
	validMoves := domain.GetValidMoves(board)
	if len(validMoves) == 0 {
		return -1
	}
	if len(validMoves) == 1 {
		return validMoves[0]
	}

	opponent := aiMark.Opponent()

	if move := FindWinningMove(board, aiMark); move != -1 {
		return move
	}
	if move := FindWinningMove(board, opponent); move != -1 {
		return move
	}
	if counter != nil {
		if move := counter(board); move != -1 && domain.IsValidMove(board, move) {
			return move
		}
	}
	if move := FindForkMove(board, aiMark); move != -1 {
		return move
	}
	if move := FindForkMove(board, opponent); move != -1 {
		return move
	}
	if board[domain.CenterCell] == domain.Empty {
		return domain.CenterCell
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bestMove := validMoves[0]
	bestScore := -(MINIMAX_WIN_BASE + 1)
	alpha := -(MINIMAX_WIN_BASE + 1)
	beta := MINIMAX_WIN_BASE + 1

	for _, cell := range validMoves {
		board[cell] = aiMark
		score := s.minimax(board, 1, alpha, beta, false, aiMark, opponent)
		board[cell] = domain.Empty

		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	return bestMove
}

func (s *ExactSearch) minimax(board domain.Board, depth, alpha, beta int, isMaximizing bool, aiMark, opponent domain.Mark) int {
	if domain.CheckWin(board, aiMark) {
		return MINIMAX_WIN_BASE - depth // Prefer quicker wins
	}
	if domain.CheckWin(board, opponent) {
		return -(MINIMAX_WIN_BASE - depth) // Prefer delaying losses
	}
	if domain.IsBoardFull(board) {
		return 0
	}

	key := memoKey{board: domain.Serialize(board), maximizing: isMaximizing, depth: depth}
	if score, ok := s.memo[key]; ok {
		return score
	}

	var result int
	if isMaximizing {
		maxEval := -(MINIMAX_WIN_BASE + 1)
		for cell := 0; cell < domain.BoardCells; cell++ {
			if board[cell] != domain.Empty {
				continue
			}
			board[cell] = aiMark
			eval := s.minimax(board, depth+1, alpha, beta, false, aiMark, opponent)
			board[cell] = domain.Empty

			if eval > maxEval {
				maxEval = eval
			}
			if eval > alpha {
				alpha = eval
			}
			if beta <= alpha {
				break // Beta cutoff
			}
		}
		result = maxEval
	} else {
		minEval := MINIMAX_WIN_BASE + 1
		for cell := 0; cell < domain.BoardCells; cell++ {
			if board[cell] != domain.Empty {
				continue
			}
			board[cell] = opponent
			eval := s.minimax(board, depth+1, alpha, beta, true, aiMark, opponent)
			board[cell] = domain.Empty

			if eval < minEval {
				minEval = eval
			}
			if eval < beta {
				beta = eval
			}
			if beta <= alpha {
				break // Alpha cutoff
			}
		}
		result = minEval
	}

	if len(s.memo) >= MINIMAX_MEMO_CAP {
		s.memo = make(map[memoKey]int)
	}
	s.memo[key] = result

	return result
}
