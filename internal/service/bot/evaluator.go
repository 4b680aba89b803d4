package bot

import (
	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

const (
	// Limited-variant positional weights
	LINE_CONTROL_WEIGHT = 10 // per piece on an exclusively controlled line
	NEAR_WIN_BONUS      = 30 // two in a line with the third cell empty
	CENTER_BONUS        = 15
	CORNER_BONUS        = 5

	// Strategy scoring weights
	SCORE_COMPLETE_PAIR = 3 // aggressive: corner extends a mark into a pair
	SCORE_BLOCK_THREAT  = 5 // defensive: candidate covers a live opponent pair
)

// FindWinningMove returns the empty cell completing a line for mark, or -1.
// Lines are scanned in canonical order (rows, columns, diagonals) so the
// result is deterministic.
func FindWinningMove(board domain.Board, mark domain.Mark) int {
	for _, line := range domain.WinningLines {
		count := 0
		emptyCell := -1
		for _, cell := range line {
			switch board[cell] {
			case mark:
				count++
			case domain.Empty:
				emptyCell = cell
			}
		}
		if count == 2 && emptyCell != -1 {
			return emptyCell
		}
	}
	return -1
}

// FindForkMove returns the first empty cell (index order) where placing mark
// creates two or more simultaneous two-in-a-line threats, or -1.
func FindForkMove(board domain.Board, mark domain.Mark) int {
	for cell := 0; cell < domain.BoardCells; cell++ {
		if board[cell] != domain.Empty {
			continue
		}
		board[cell] = mark
		threats := CountThreats(board, mark)
		board[cell] = domain.Empty
		if threats >= 2 {
			return cell
		}
	}
	return -1
}

// CountThreats counts lines holding exactly two of mark and one empty cell.
func CountThreats(board domain.Board, mark domain.Mark) int {
	threats := 0
	for _, line := range domain.WinningLines {
		own := 0
		empty := 0
		for _, cell := range line {
			switch board[cell] {
			case mark:
				own++
			case domain.Empty:
				empty++
			}
		}
		if own == 2 && empty == 1 {
			threats++
		}
	}
	return threats
}

// lineControlScore is the limited-variant line term: exclusively controlled
// lines score per piece, near wins get a flat bonus, both mirrored for the
// opponent.
func lineControlScore(board domain.Board, aiMark domain.Mark) int {
	opponent := aiMark.Opponent()
	score := 0
	for _, line := range domain.WinningLines {
		own, theirs, empty := 0, 0, 0
		for _, cell := range line {
			switch board[cell] {
			case aiMark:
				own++
			case opponent:
				theirs++
			default:
				empty++
			}
		}
		if own > 0 && theirs == 0 {
			score += LINE_CONTROL_WEIGHT * own
			if own == 2 && empty == 1 {
				score += NEAR_WIN_BONUS
			}
		}
		if theirs > 0 && own == 0 {
			score -= LINE_CONTROL_WEIGHT * theirs
			if theirs == 2 && empty == 1 {
				score -= NEAR_WIN_BONUS
			}
		}
	}
	return score
}

// EvaluateLimitedPosition scores a limited-variant board from aiMark's
// perspective: line control, center/corner occupancy, and the control swing
// from each side's impending oldest-piece eviction.
func EvaluateLimitedPosition(board domain.Board, aiMark domain.Mark, aiHistory, oppHistory domain.PieceHistory) int {
	opponent := aiMark.Opponent()
	score := lineControlScore(board, aiMark)

	switch board[domain.CenterCell] {
	case aiMark:
		score += CENTER_BONUS
	case opponent:
		score -= CENTER_BONUS
	}
	for _, corner := range domain.Corners {
		switch board[corner] {
		case aiMark:
			score += CORNER_BONUS
		case opponent:
			score -= CORNER_BONUS
		}
	}

	// Eviction impact: a full-handed opponent is about to lose its oldest
	// piece (good for us); a full hand of our own means the reverse.
	base := lineControlScore(board, aiMark)
	if oppHistory.AtCap() {
		if oldest := oppHistory.Oldest(); oldest >= 0 && board[oldest] == opponent {
			board[oldest] = domain.Empty
			score += lineControlScore(board, aiMark) - base
			board[oldest] = opponent
		}
	}
	if aiHistory.AtCap() {
		if oldest := aiHistory.Oldest(); oldest >= 0 && board[oldest] == aiMark {
			board[oldest] = domain.Empty
			score += lineControlScore(board, aiMark) - base
			board[oldest] = aiMark
		}
	}

	return score
}
