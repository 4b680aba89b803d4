package domain

// PieceHistory tracks a player's live pieces in the limited variant,
// oldest first. It never holds more than MaxLivePieces entries.
type PieceHistory []int

func CopyHistory(history PieceHistory) PieceHistory {
	if history == nil {
		return nil
	}
	newHistory := make(PieceHistory, len(history))
	copy(newHistory, history)
	return newHistory
}

// Push appends a placement and returns the evicted cell, or -1 when the
// player was still below the cap.
func (h *PieceHistory) Push(cell int) int {
	evicted := -1
	if len(*h) >= MaxLivePieces {
		evicted = (*h)[0]
		*h = (*h)[1:]
	}
	*h = append(*h, cell)
	return evicted
}

// Oldest returns the cell that the next overflow would evict, or -1.
func (h PieceHistory) Oldest() int {
	if len(h) == 0 {
		return -1
	}
	return h[0]
}

func (h PieceHistory) AtCap() bool {
	return len(h) >= MaxLivePieces
}

// ApplyMove places mark at cell, evicting the mover's oldest piece when the
// limited-variant cap is hit. Returns the evicted cell (-1 if none).
func ApplyMove(board Board, history *PieceHistory, cell int, mark Mark, variant Variant) (int, error) {
	if !IsValidMove(board, cell) {
		if cell >= 0 && cell < BoardCells {
			return -1, ErrCellOccupied
		}
		return -1, ErrInvalidMove
	}
	evicted := -1
	if variant == VariantLimited && history != nil {
		evicted = history.Push(cell)
		if evicted >= 0 {
			board[evicted] = Empty
		}
	}
	board[cell] = mark
	return evicted, nil
}
