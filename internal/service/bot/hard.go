package bot

const HARD_COUNTER_CHANCE = 0.9

// hardMove always runs the full adaptive strategy selection and gives the
// opponent-model counter a 90% gate inside exact search.
func (e *Engine) hardMove(req MoveRequest) int {
	return e.adaptiveMove(req, HARD_COUNTER_CHANCE)
}

// adaptiveMove asks the bandit for an arm and plays that strategy.
func (e *Engine) adaptiveMove(req MoveRequest, counterChance float64) int {
	strategy := e.selector.SelectStrategy()
	return e.strategyMove(strategy, req, counterChance)
}
