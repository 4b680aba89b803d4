package bot

const (
	MEDIUM_ADAPTIVE_CHANCE = 0.7
	MEDIUM_COUNTER_CHANCE  = 0.5

	// Reduced iteration budget for the lighter non-adaptive path.
	MEDIUM_MCTS_ITERATIONS = 200
)

// mediumMove mostly runs the full adaptive strategy selection, with a
// lighter reduced-budget MCTS call the rest of the time.
func (e *Engine) mediumMove(req MoveRequest) int {
	if e.rng.Float64() < MEDIUM_ADAPTIVE_CHANCE {
		return e.adaptiveMove(req, MEDIUM_COUNTER_CHANCE)
	}
	return e.mcts.BestMove(req.Board, req.AIMark, req.Variant, req.AIHistory, req.OppHistory, MEDIUM_MCTS_ITERATIONS, e.mctsBudget)
}
