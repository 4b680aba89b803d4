package bot

import (
	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

// strategyMove dispatches to one of the 8 named bandit arms. Every arm
// shares the immediate-win / immediate-block preamble before diverging.
func (e *Engine) strategyMove(name string, req MoveRequest, counterChance float64) int {
	validMoves := domain.GetValidMoves(req.Board)
	if len(validMoves) == 0 {
		return -1
	}

	opponent := req.AIMark.Opponent()
	if move := FindWinningMove(req.Board, req.AIMark); move != -1 {
		return move
	}
	if move := FindWinningMove(req.Board, opponent); move != -1 {
		return move
	}

	switch name {
	case "minimax":
		if req.Variant == domain.VariantLimited {
			return e.limited.BestMove(req.Board, req.AIMark, req.AIHistory, req.OppHistory)
		}
		return e.exact.BestMoveWithCounter(req.Board, req.AIMark, e.counterFunc(counterChance))
	case "mcts":
		return e.mcts.BestMove(req.Board, req.AIMark, req.Variant, req.AIHistory, req.OppHistory, e.mctsIterations, e.mctsBudget)
	case "bayesian":
		if move := e.opponent.CounterMove(req.Board); move != -1 && domain.IsValidMove(req.Board, move) {
			return move
		}
		return e.mcts.BestMove(req.Board, req.AIMark, req.Variant, req.AIHistory, req.OppHistory, e.mctsIterations, e.mctsBudget)
	case "aggressive":
		return e.aggressiveMove(req.Board, req.AIMark, validMoves)
	case "defensive":
		return e.defensiveMove(req.Board, req.AIMark, validMoves)
	case "corners":
		return cornersMove(req.Board)
	case "center":
		return centerMove(req.Board, opponent)
	case "random":
		return validMoves[e.rng.Intn(len(validMoves))]
	}
	return validMoves[e.rng.Intn(len(validMoves))]
}

// counterFunc gates the opponent-model suggestion behind the difficulty's
// counter probability. Returns nil when the gate never opens.
func (e *Engine) counterFunc(counterChance float64) func(domain.Board) int {
	if counterChance <= 0 {
		return nil
	}
	return func(board domain.Board) int {
		if e.rng.Float64() >= counterChance {
			return -1
		}
		return e.opponent.CounterMove(board)
	}
}

// aggressiveMove hunts forks, then center, then the corner keeping the most
// winning lines alive; falls back to a random side, then anything.
func (e *Engine) aggressiveMove(board domain.Board, mark domain.Mark, validMoves []int) int {
	if move := FindForkMove(board, mark); move != -1 {
		return move
	}
	if board[domain.CenterCell] == domain.Empty {
		return domain.CenterCell
	}

	bestCorner := -1
	bestScore := -1
	for _, corner := range domain.Corners {
		if board[corner] != domain.Empty {
			continue
		}
		score := 0
		for _, line := range domain.WinningLines {
			if !lineContains(line, corner) {
				continue
			}
			own, theirs := 0, 0
			for _, cell := range line {
				switch board[cell] {
				case mark:
					own++
				case mark.Opponent():
					theirs++
				}
			}
			if theirs > 0 {
				continue // line already dead for us
			}
			score++
			if own == 1 {
				score += SCORE_COMPLETE_PAIR // corner would advance a pair
			}
		}
		if score > bestScore {
			bestScore = score
			bestCorner = corner
		}
	}
	if bestCorner != -1 {
		return bestCorner
	}

	openSides := []int{}
	for _, side := range domain.Sides {
		if board[side] == domain.Empty {
			openSides = append(openSides, side)
		}
	}
	if len(openSides) > 0 {
		return openSides[e.rng.Intn(len(openSides))]
	}
	return validMoves[e.rng.Intn(len(validMoves))]
}

// defensiveMove blocks forks, takes center, then picks the cell leaving the
// opponent the fewest live winning-line opportunities.
func (e *Engine) defensiveMove(board domain.Board, mark domain.Mark, validMoves []int) int {
	opponent := mark.Opponent()
	if move := FindForkMove(board, opponent); move != -1 {
		return move
	}
	if board[domain.CenterCell] == domain.Empty {
		return domain.CenterCell
	}

	bestMove := validMoves[0]
	bestScore := domain.BoardCells * domain.BoardCells
	for _, cell := range validMoves {
		coversThreat := cellCoversThreat(board, cell, opponent)
		board[cell] = mark
		score := countOpenLines(board, opponent)
		board[cell] = domain.Empty
		if coversThreat {
			score -= SCORE_BLOCK_THREAT
		}
		if score < bestScore {
			bestScore = score
			bestMove = cell
		}
	}
	return bestMove
}

// cornersMove plays the fixed corner preference order, then center, then the
// first open side, then the first open cell.
func cornersMove(board domain.Board) int {
	preference := [4]int{0, 8, 2, 6}
	for _, corner := range preference {
		if board[corner] == domain.Empty {
			return corner
		}
	}
	if board[domain.CenterCell] == domain.Empty {
		return domain.CenterCell
	}
	for _, side := range domain.Sides {
		if board[side] == domain.Empty {
			return side
		}
	}
	for cell := 0; cell < domain.BoardCells; cell++ {
		if board[cell] == domain.Empty {
			return cell
		}
	}
	return -1
}

// centerMove takes center, else the corner diametrically opposite an
// opponent corner, else any corner, side, or cell.
func centerMove(board domain.Board, opponent domain.Mark) int {
	if board[domain.CenterCell] == domain.Empty {
		return domain.CenterCell
	}
	opposite := map[int]int{0: 8, 8: 0, 2: 6, 6: 2}
	for _, corner := range domain.Corners {
		if board[corner] == opponent && board[opposite[corner]] == domain.Empty {
			return opposite[corner]
		}
	}
	for _, corner := range domain.Corners {
		if board[corner] == domain.Empty {
			return corner
		}
	}
	for _, side := range domain.Sides {
		if board[side] == domain.Empty {
			return side
		}
	}
	for cell := 0; cell < domain.BoardCells; cell++ {
		if board[cell] == domain.Empty {
			return cell
		}
	}
	return -1
}

func lineContains(line [3]int, cell int) bool {
	return line[0] == cell || line[1] == cell || line[2] == cell
}

// countOpenLines counts lines mark could still complete (at least one of
// mark's pieces, none of the opponent's).
func countOpenLines(board domain.Board, mark domain.Mark) int {
	opponent := mark.Opponent()
	open := 0
	for _, line := range domain.WinningLines {
		own, theirs := 0, 0
		for _, cell := range line {
			switch board[cell] {
			case mark:
				own++
			case opponent:
				theirs++
			}
		}
		if own > 0 && theirs == 0 {
			open++
		}
	}
	return open
}

// cellCoversThreat reports whether cell is the empty third of a line where
// mark already holds two pieces.
func cellCoversThreat(board domain.Board, cell int, mark domain.Mark) bool {
	for _, line := range domain.WinningLines {
		if !lineContains(line, cell) {
			continue
		}
		own := 0
		for _, c := range line {
			if board[c] == mark {
				own++
			}
		}
		if own == 2 {
			return true
		}
	}
	return false
}
