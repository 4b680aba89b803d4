package bot

import (
	"math"
	"math/rand"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

const (
	MCTS_DEFAULT_ITERATIONS = 1000
	MCTS_DEFAULT_BUDGET     = 500 * time.Millisecond

	// Limited-variant playouts can cycle forever under eviction; a capped
	// rollout is scored as a draw.
	MCTS_ROLLOUT_CAP = 60
)

var mctsExploration = math.Sqrt2

// mctsNode lives in a flat arena. Parent and children are arena indexes, so
// the tree carries no pointer cycles and dies with the slice.
type mctsNode struct {
	parent   int
	children []int
	move     int
	mover    domain.Mark // mark that played move to reach this node
	board    domain.Board
	histX    domain.PieceHistory
	histO    domain.PieceHistory
	untried  []int
	visits   int
	wins     float64
}

// MCTSPlanner runs UCB1 Monte Carlo Tree Search, bounded by both an
// iteration budget and a wall-clock budget so a single call can never hang
// a caller past the deadline. Each call builds its own arena; the only
// shared state is the locked random source, so concurrent calls are safe.
type MCTSPlanner struct {
	rng *lockedRand
}

func NewMCTSPlanner(rng *rand.Rand) *MCTSPlanner {
	return &MCTSPlanner{rng: newLockedRand(rng)}
}

// BestMove returns the robust child (highest visit count) of the root, or -1
// when the board has no empty cell or the tree never expanded.
func (p *MCTSPlanner) BestMove(board domain.Board, mark domain.Mark, variant domain.Variant, aiHistory, oppHistory domain.PieceHistory, iterations int, budget time.Duration) int {
	validMoves := domain.GetValidMoves(board)
	if len(validMoves) == 0 {
		return -1
	}

	opponent := mark.Opponent()
	if move := FindWinningMove(board, mark); move != -1 {
		return move
	}
	if move := FindWinningMove(board, opponent); move != -1 {
		return move
	}

	if iterations <= 0 {
		iterations = MCTS_DEFAULT_ITERATIONS
	}
	if budget <= 0 {
		budget = MCTS_DEFAULT_BUDGET
	}

	histX, histO := splitHistories(mark, aiHistory, oppHistory)
	capHint := iterations + 1
	if capHint > 4096 {
		capHint = 4096
	}
	arena := make([]mctsNode, 1, capHint)
	arena[0] = mctsNode{
		parent:  -1,
		move:    -1,
		mover:   opponent, // root's children are mark's moves
		board:   domain.CopyBoard(board),
		histX:   domain.CopyHistory(histX),
		histO:   domain.CopyHistory(histO),
		untried: validMoves,
	}

	deadline := time.Now().Add(budget)
	for i := 0; i < iterations; i++ {
		if time.Now().After(deadline) {
			break
		}

		// Selection
		current := 0
		for len(arena[current].untried) == 0 && len(arena[current].children) > 0 {
			current = p.selectChild(arena, current)
		}

		// Expansion
		if len(arena[current].untried) > 0 && domain.Winner(arena[current].board) == domain.Empty {
			current = p.expand(&arena, current, variant)
		}

		// Simulation
		winner := p.simulate(arena[current], variant)

		// Backpropagation
		for node := current; node != -1; node = arena[node].parent {
			arena[node].visits++
			if winner == arena[node].mover {
				arena[node].wins += 1.0
			} else if winner == domain.Empty {
				arena[node].wins += 0.5
			}
		}
	}

	root := arena[0]
	if len(root.children) == 0 {
		return -1
	}
	bestMove := -1
	bestVisits := -1
	for _, child := range root.children {
		if arena[child].visits > bestVisits {
			bestVisits = arena[child].visits
			bestMove = arena[child].move
		}
	}
	return bestMove
}

func (p *MCTSPlanner) selectChild(arena []mctsNode, parent int) int {
	parentVisits := float64(arena[parent].visits)
	best := arena[parent].children[0]
	bestValue := math.Inf(-1)
	for _, child := range arena[parent].children {
		node := arena[child]
		var value float64
		if node.visits == 0 {
			value = math.Inf(1)
		} else {
			winRate := node.wins / float64(node.visits)
			value = winRate + mctsExploration*math.Sqrt(math.Log(parentVisits)/float64(node.visits))
		}
		if value > bestValue {
			bestValue = value
			best = child
		}
	}
	return best
}

// expand materializes one untried move, chosen uniformly at random, as a new
// arena node and returns its index.
func (p *MCTSPlanner) expand(arena *[]mctsNode, parent int, variant domain.Variant) int {
	node := &(*arena)[parent]
	pick := p.rng.Intn(len(node.untried))
	move := node.untried[pick]
	node.untried[pick] = node.untried[len(node.untried)-1]
	node.untried = node.untried[:len(node.untried)-1]

	toMove := node.mover.Opponent()
	childBoard := domain.CopyBoard(node.board)
	childX := domain.CopyHistory(node.histX)
	childO := domain.CopyHistory(node.histO)
	applySimMove(childBoard, &childX, &childO, move, toMove, variant)

	child := mctsNode{
		parent:  parent,
		move:    move,
		mover:   toMove,
		board:   childBoard,
		histX:   childX,
		histO:   childO,
		untried: domain.GetValidMoves(childBoard),
	}
	*arena = append(*arena, child)
	index := len(*arena) - 1
	(*arena)[parent].children = append((*arena)[parent].children, index)
	return index
}

// simulate plays uniformly random moves to a terminal state and returns the
// winning mark, or Empty for a draw (including capped limited rollouts).
func (p *MCTSPlanner) simulate(node mctsNode, variant domain.Variant) domain.Mark {
	board := domain.CopyBoard(node.board)
	histX := domain.CopyHistory(node.histX)
	histO := domain.CopyHistory(node.histO)
	toMove := node.mover.Opponent()

	if winner := domain.Winner(board); winner != domain.Empty {
		return winner
	}

	for ply := 0; ply < MCTS_ROLLOUT_CAP; ply++ {
		moves := domain.GetValidMoves(board)
		if len(moves) == 0 {
			return domain.Empty
		}
		move := moves[p.rng.Intn(len(moves))]
		applySimMove(board, &histX, &histO, move, toMove, variant)
		if domain.CheckWin(board, toMove) {
			return toMove
		}
		toMove = toMove.Opponent()
	}
	return domain.Empty
}

func applySimMove(board domain.Board, histX, histO *domain.PieceHistory, move int, mover domain.Mark, variant domain.Variant) {
	history := histX
	if mover == domain.MarkO {
		history = histO
	}
	if variant != domain.VariantLimited {
		history = nil
	}
	domain.ApplyMove(board, history, move, mover, variant)
}

func splitHistories(mark domain.Mark, aiHistory, oppHistory domain.PieceHistory) (domain.PieceHistory, domain.PieceHistory) {
	if mark == domain.MarkX {
		return aiHistory, oppHistory
	}
	return oppHistory, aiHistory
}
