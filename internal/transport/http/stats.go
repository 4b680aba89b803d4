package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adaptiveplay/tictactoe/backend/internal/service/persist"
)

// StatsHandler serves read-only views of the learning state plus the
// admin-guarded reset.
type StatsHandler struct {
	Store *persist.Store
}

func NewStatsHandler(store *persist.Store) *StatsHandler {
	return &StatsHandler{Store: store}
}

// Strategies handles GET /api/stats/strategies.
func (h *StatsHandler) Strategies(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Selector().Snapshot())
}

// Patterns handles GET /api/stats/patterns.
func (h *StatsHandler) Patterns(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Opponent().Snapshot())
}

// Reset handles POST /api/learn/reset. It wipes both models in memory and
// in every persistence tier; the route sits behind AdminAuthMiddleware.
func (h *StatsHandler) Reset(c *gin.Context) {
	if err := h.Store.ResetAll(c.Request.Context()); err != nil {
		log.Printf("[LEARN] Reset failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset learning state"})
		return
	}
	log.Println("[LEARN] Learning state reset to seed values")
	c.JSON(http.StatusOK, gin.H{"reset": true})
}
