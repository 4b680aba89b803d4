package domain

// Board is the 3x3 grid in row-major order, cells 0-8.
type Board []Mark

// WinningLines lists the 8 lines in canonical order: rows, columns, diagonals.
var WinningLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Corners and Sides in the preference orders the strategies use.
var (
	Corners = [4]int{0, 2, 6, 8}
	Sides   = [4]int{1, 3, 5, 7}
)

func NewBoard() Board {
	return make(Board, BoardCells)
}

// this creates a deep copy of the board
func CopyBoard(board Board) Board {
	newBoard := make(Board, len(board))
	copy(newBoard, board)
	return newBoard
}

func IsValidMove(board Board, cell int) bool {
	if cell < 0 || cell >= BoardCells {
		return false
	}
	return board[cell] == Empty
}

// GetValidMoves returns the empty cells in index order.
func GetValidMoves(board Board) []int {
	validMoves := []int{}
	for cell := 0; cell < BoardCells; cell++ {
		if board[cell] == Empty {
			validMoves = append(validMoves, cell)
		}
	}
	return validMoves
}

func IsBoardFull(board Board) bool {
	for cell := 0; cell < BoardCells; cell++ {
		if board[cell] == Empty {
			return false
		}
	}
	return true
}

// CheckWin reports whether the given mark owns a full line.
func CheckWin(board Board, mark Mark) bool {
	for _, line := range WinningLines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return true
		}
	}
	return false
}

// Winner returns the mark owning a full line, or Empty if nobody has won.
func Winner(board Board) Mark {
	for _, line := range WinningLines {
		if board[line[0]] != Empty && board[line[0]] == board[line[1]] && board[line[1]] == board[line[2]] {
			return board[line[0]]
		}
	}
	return Empty
}

// Serialize renders the board as a 9-character string ('-' for empty),
// the key format shared by the search memo and persisted patterns.
func Serialize(board Board) string {
	buf := make([]byte, BoardCells)
	for i, mark := range board {
		buf[i] = mark.Symbol()
	}
	return string(buf)
}

// ParseBoard is the inverse of Serialize. Unknown characters become Empty.
func ParseBoard(s string) (Board, bool) {
	if len(s) != BoardCells {
		return nil, false
	}
	board := NewBoard()
	for i := 0; i < BoardCells; i++ {
		switch s[i] {
		case 'X', 'x':
			board[i] = MarkX
		case 'O', 'o':
			board[i] = MarkO
		case '-':
			board[i] = Empty
		default:
			return nil, false
		}
	}
	return board, true
}
