package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/bot"
)

// EngineHandler exposes the decision engine to stateless HTTP clients that
// manage their own game state (the WebSocket flow keeps state server-side).
type EngineHandler struct {
	Engine *bot.Engine
}

func NewEngineHandler(engine *bot.Engine) *EngineHandler {
	return &EngineHandler{Engine: engine}
}

type moveRequest struct {
	Board      string `json:"board"`
	AIMark     string `json:"aiMark"`
	Variant    string `json:"variant"`
	Difficulty string `json:"difficulty"`
	AIHistory  []int  `json:"aiHistory"`
	OppHistory []int  `json:"oppHistory"`
}

type moveResponse struct {
	Move     int    `json:"move"`
	Strategy string `json:"strategy,omitempty"`
}

// ComputeMove handles POST /api/move.
func (h *EngineHandler) ComputeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	board, ok := domain.ParseBoard(req.Board)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board must be 9 characters of X, O, -"})
		return
	}

	aiMark := domain.ParseMark(req.AIMark)
	if aiMark == domain.Empty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aiMark must be X or O"})
		return
	}

	variant := domain.Variant(req.Variant)
	if variant != domain.VariantLimited {
		variant = domain.VariantClassic
	}

	aiHistory, ok := parseHistory(req.AIHistory, board, aiMark)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aiHistory does not match the board"})
		return
	}
	oppHistory, ok := parseHistory(req.OppHistory, board, aiMark.Opponent())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "oppHistory does not match the board"})
		return
	}

	difficulty := domain.Difficulty(req.Difficulty)
	switch difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		difficulty = domain.DifficultyMedium
	}

	move := h.Engine.ComputeMove(bot.MoveRequest{
		Board:      board,
		AIMark:     aiMark,
		Variant:    variant,
		AIHistory:  aiHistory,
		OppHistory: oppHistory,
	}, difficulty)

	c.JSON(http.StatusOK, moveResponse{
		Move:     move,
		Strategy: h.Engine.Selector().Current(),
	})
}

// parseHistory validates that every listed cell actually holds the mark and
// that the list respects the live-piece cap.
func parseHistory(cells []int, board domain.Board, mark domain.Mark) (domain.PieceHistory, bool) {
	if len(cells) > domain.MaxLivePieces {
		return nil, false
	}
	history := make(domain.PieceHistory, 0, len(cells))
	for _, cell := range cells {
		if cell < 0 || cell >= domain.BoardCells || board[cell] != mark {
			return nil, false
		}
		history = append(history, cell)
	}
	return history, true
}

type observeRequest struct {
	Board string `json:"board"`
	Move  int    `json:"move"`
}

// Observe handles POST /api/learn/observe: a human move on the pre-move
// board, fed to the opponent model.
func (h *EngineHandler) Observe(c *gin.Context) {
	var req observeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	board, ok := domain.ParseBoard(req.Board)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board must be 9 characters of X, O, -"})
		return
	}
	if !domain.IsValidMove(board, req.Move) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Move must be an empty cell 0-8"})
		return
	}

	h.Engine.ObservePlayerMove(board, req.Move)
	c.JSON(http.StatusOK, gin.H{
		"patterns": h.Engine.OpponentModel().PatternCount(),
	})
}

type outcomeRequest struct {
	Winner string `json:"winner"` // "X", "O" or "" for a draw
	AIMark string `json:"aiMark"`
}

// Outcome handles POST /api/learn/outcome, crediting the bandit's current
// arm with a finished game.
func (h *EngineHandler) Outcome(c *gin.Context) {
	var req outcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	aiMark := domain.ParseMark(req.AIMark)
	if aiMark == domain.Empty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aiMark must be X or O"})
		return
	}

	winner := domain.ParseMark(req.Winner)
	h.Engine.RecordGameOutcome(winner, aiMark)
	log.Printf("[LEARN] Outcome recorded: winner=%q strategy=%q", req.Winner, h.Engine.Selector().Current())
	c.JSON(http.StatusOK, gin.H{"recorded": true})
}
