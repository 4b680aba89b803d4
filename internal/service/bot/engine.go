package bot

import (
	"math/rand"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/learning"
)

// MoveRequest carries everything a single move computation needs. Histories
// are only consulted in the limited variant.
type MoveRequest struct {
	Board      domain.Board
	AIMark     domain.Mark
	Variant    domain.Variant
	AIHistory  domain.PieceHistory
	OppHistory domain.PieceHistory
}

// Engine is the decision core: search components plus the two learning
// models, behind one ComputeMove entry point. One Engine serves every
// request goroutine and WS session, so everything it holds is safe for
// concurrent use.
type Engine struct {
	exact          *ExactSearch
	limited        *LimitedSearch
	mcts           *MCTSPlanner
	opponent       *learning.OpponentModel
	selector       *learning.StrategySelector
	rng            *lockedRand
	mctsIterations int
	mctsBudget     time.Duration
}

// NewEngine wires the searches around the given models. A nil rng gets a
// time-seeded source. The planner shares the engine's locked source so the
// two never race on the underlying rand.Rand.
func NewEngine(opponent *learning.OpponentModel, selector *learning.StrategySelector, rng *rand.Rand) *Engine {
	lr := newLockedRand(rng)
	return &Engine{
		exact:          NewExactSearch(),
		limited:        NewLimitedSearch(),
		mcts:           &MCTSPlanner{rng: lr},
		opponent:       opponent,
		selector:       selector,
		rng:            lr,
		mctsIterations: MCTS_DEFAULT_ITERATIONS,
		mctsBudget:     MCTS_DEFAULT_BUDGET,
	}
}

// SetMCTSBudget overrides the full-strength search budget. Non-positive
// values keep the current setting.
func (e *Engine) SetMCTSBudget(iterations int, budget time.Duration) {
	if iterations > 0 {
		e.mctsIterations = iterations
	}
	if budget > 0 {
		e.mctsBudget = budget
	}
}

// ComputeMove selects the bot's move for the given difficulty. Returns -1
// only when the board has no empty cell; any internal inability to act
// degrades to a random legal move instead of surfacing an error.
func (e *Engine) ComputeMove(req MoveRequest, difficulty domain.Difficulty) int {
	validMoves := domain.GetValidMoves(req.Board)
	if len(validMoves) == 0 {
		return -1
	}

	var move int
	switch difficulty {
	case domain.DifficultyEasy:
		move = e.easyMove(req)
	case domain.DifficultyMedium:
		move = e.mediumMove(req)
	case domain.DifficultyHard:
		move = e.hardMove(req)
	default:
		move = e.mediumMove(req)
	}

	if !domain.IsValidMove(req.Board, move) {
		move = validMoves[e.rng.Intn(len(validMoves))]
	}
	return move
}

// ObservePlayerMove feeds a human move into the opponent model. The board is
// the position before the move was played.
func (e *Engine) ObservePlayerMove(boardBeforeMove domain.Board, move int) {
	e.opponent.Observe(boardBeforeMove, move)
}

// RecordGameOutcome credits the bandit's current arm with the finished
// game's result. winner is Empty for a draw.
func (e *Engine) RecordGameOutcome(winner, aiMark domain.Mark) {
	e.selector.RecordOutcome(winner, aiMark)
}

// OpponentModel exposes the Bayesian model for stats and persistence.
func (e *Engine) OpponentModel() *learning.OpponentModel {
	return e.opponent
}

// Selector exposes the bandit for stats and persistence.
func (e *Engine) Selector() *learning.StrategySelector {
	return e.selector
}
