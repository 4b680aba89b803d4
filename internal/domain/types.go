package domain

// Mark identifies which player owns a cell.
type Mark int

const (
	Empty Mark = 0
	MarkX Mark = 1
	MarkO Mark = 2
)

func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	}
	return Empty
}

// Symbol returns the single-character serialization used by board keys
// and persisted pattern entries ('-' for an empty cell).
func (m Mark) Symbol() byte {
	switch m {
	case MarkX:
		return 'X'
	case MarkO:
		return 'O'
	}
	return '-'
}

func ParseMark(s string) Mark {
	switch s {
	case "X", "x":
		return MarkX
	case "O", "o":
		return MarkO
	}
	return Empty
}

// Variant selects the rule set: classic fills the board, limited caps each
// player at three live pieces and evicts the oldest on overflow.
type Variant string

const (
	VariantClassic Variant = "classic"
	VariantLimited Variant = "limited"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	BoardCells = 9
	CenterCell = 4

	// MaxLivePieces is the per-player cap in the limited variant.
	MaxLivePieces = 3
)

var BotNames = map[Difficulty]string{
	DifficultyEasy:   "Rook",
	DifficultyMedium: "Vale",
	DifficultyHard:   "Mara",
}

func GetBotName(difficulty Difficulty) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrCellOccupied Error = "cell is occupied"
	ErrNotYourTurn  Error = "not your turn"
	ErrGameOver     Error = "game is over"
)
