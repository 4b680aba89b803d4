package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adaptiveplay/tictactoe/backend/internal/repository/postgres"
)

const defaultHistoryLimit = 20

type HistoryHandler struct {
	GameRepo *postgres.GameRepo
}

func NewHistoryHandler(gameRepo *postgres.GameRepo) *HistoryHandler {
	return &HistoryHandler{GameRepo: gameRepo}
}

// RecentGames handles GET /api/games/recent.
func (h *HistoryHandler) RecentGames(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be 1-100"})
			return
		}
		limit = parsed
	}

	games, err := h.GameRepo.RecentGames(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch games"})
		return
	}

	// Map to frontend expectation
	type gameItem struct {
		ID         string    `json:"id"`
		Variant    string    `json:"variant"`
		Difficulty string    `json:"difficulty"`
		HumanMark  string    `json:"humanMark"`
		Result     string    `json:"result"` // "win", "loss", "draw" from the human's side
		MovesCount int       `json:"movesCount"`
		Duration   int       `json:"durationSeconds"`
		FinishedAt time.Time `json:"finishedAt"`
	}

	items := make([]gameItem, 0, len(games))
	for _, game := range games {
		item := gameItem{
			ID:         game.GameID,
			Variant:    game.Variant,
			Difficulty: game.Difficulty,
			HumanMark:  game.HumanMark,
			MovesCount: game.TotalMoves,
			Duration:   game.DurationSeconds,
			FinishedAt: game.FinishedAt,
		}
		switch game.WinnerMark {
		case "":
			item.Result = "draw"
		case game.HumanMark:
			item.Result = "win"
		default:
			item.Result = "loss"
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, items)
}
