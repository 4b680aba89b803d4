package learning

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

const (
	// LEARNING_RATE is the exponential smoothing factor per observation.
	LEARNING_RATE = 0.2

	// MIN_OBSERVATIONS is the confidence floor below which predict abstains.
	MIN_OBSERVATIONS = 2

	// Counter-move confidence bands
	COUNTER_STRONG_CONFIDENCE = 0.6
	COUNTER_WEAK_CONFIDENCE   = 0.3

	// Prior mass per cell class for unseen states
	PRIOR_CENTER = 0.4
	PRIOR_CORNER = 0.15
	PRIOR_EDGE   = 0.05
)

type conditionalProbability struct {
	moveProbs    map[int]float64
	observations int
}

// OpponentModel learns P(move | board state) from observed opponent moves,
// with geometrically equivalent boards folded onto one canonical entry.
// Mutating operations are safe for concurrent use; game sessions, the stats
// API and the persistence worker all share one instance.
type OpponentModel struct {
	mu       sync.Mutex
	patterns map[string]*conditionalProbability
}

func NewOpponentModel() *OpponentModel {
	return &OpponentModel{patterns: make(map[string]*conditionalProbability)}
}

func priorWeight(cell int) float64 {
	if cell == domain.CenterCell {
		return PRIOR_CENTER
	}
	for _, corner := range domain.Corners {
		if cell == corner {
			return PRIOR_CORNER
		}
	}
	return PRIOR_EDGE
}

// seedPattern builds the prior distribution over the empty cells of a
// canonical state and normalizes it to sum to 1.
func seedPattern(canonical string) *conditionalProbability {
	entry := &conditionalProbability{moveProbs: make(map[int]float64)}
	total := 0.0
	for cell := 0; cell < domain.BoardCells; cell++ {
		if canonical[cell] != '-' {
			continue
		}
		weight := priorWeight(cell)
		entry.moveProbs[cell] = weight
		total += weight
	}
	if total > 0 {
		for cell := range entry.moveProbs {
			entry.moveProbs[cell] /= total
		}
	}
	return entry
}

// Observe records that the opponent played move on the given pre-move board.
func (m *OpponentModel) Observe(boardBeforeMove domain.Board, move int) {
	if move < 0 || move >= domain.BoardCells || boardBeforeMove[move] != domain.Empty {
		return
	}

	canonical, transform := Canonicalize(domain.Serialize(boardBeforeMove))
	canonicalMove := MapToCanonical(move, transform)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.patterns[canonical]
	if !ok {
		entry = seedPattern(canonical)
		m.patterns[canonical] = entry
	}

	entry.moveProbs[canonicalMove] = entry.moveProbs[canonicalMove]*(1-LEARNING_RATE) + LEARNING_RATE

	total := 0.0
	for _, p := range entry.moveProbs {
		total += p
	}
	if total > 0 {
		for cell := range entry.moveProbs {
			entry.moveProbs[cell] /= total
		}
	}
	entry.observations++
}

// Predict returns the most likely next opponent move on the actual board
// orientation with its probability, or ok=false when the state has fewer
// than MIN_OBSERVATIONS recorded moves.
func (m *OpponentModel) Predict(board domain.Board) (int, float64, bool) {
	canonical, transform := Canonicalize(domain.Serialize(board))

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.patterns[canonical]
	if !ok || entry.observations < MIN_OBSERVATIONS {
		return -1, 0, false
	}

	bestMove := -1
	bestProb := 0.0
	for cell := 0; cell < domain.BoardCells; cell++ {
		if canonical[cell] != '-' {
			continue
		}
		if p, ok := entry.moveProbs[cell]; ok && (bestMove == -1 || p > bestProb) {
			bestMove = cell
			bestProb = p
		}
	}
	if bestMove == -1 {
		return -1, 0, false
	}
	return MapFromCanonical(bestMove, transform), bestProb, true
}

// CounterMove returns the predicted opponent move so the engine can take the
// cell first (preemption, not a block), or -1 below the confidence floor.
func (m *OpponentModel) CounterMove(board domain.Board) int {
	move, confidence, ok := m.Predict(board)
	if !ok || confidence < COUNTER_WEAK_CONFIDENCE {
		return -1
	}
	return move
}

func (m *OpponentModel) PatternCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.patterns)
}

// Reset clears all learned patterns.
func (m *OpponentModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = make(map[string]*conditionalProbability)
}

// Snapshot exports the model in the persistence blob shape, with moves
// sorted for stable output.
func (m *OpponentModel) Snapshot() BayesianSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	details := make([]PatternDetail, 0, len(m.patterns))
	for state, entry := range m.patterns {
		probs := make([]MoveProbability, 0, len(entry.moveProbs))
		for cell, p := range entry.moveProbs {
			probs = append(probs, MoveProbability{Move: cell, Probability: p})
		}
		sort.Slice(probs, func(i, j int) bool { return probs[i].Move < probs[j].Move })
		details = append(details, PatternDetail{
			BoardState:    state,
			Observations:  entry.observations,
			Probabilities: probs,
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].BoardState < details[j].BoardState })

	return BayesianSnapshot{
		Version:        SnapshotVersion,
		UpdatedAt:      time.Now().UTC(),
		TotalPatterns:  len(details),
		PatternDetails: details,
	}
}

// Restore rebuilds the model from a snapshot. Malformed entries are skipped,
// never fatal; it returns how many patterns were loaded and skipped. Entries
// keyed by a non-canonical orientation (hand-edited or produced by older
// builds) are folded onto the canonical key, moves re-mapped, so every loaded
// pattern stays reachable from Predict.
func (m *OpponentModel) Restore(snapshot BayesianSnapshot) (loaded, skipped int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.patterns = make(map[string]*conditionalProbability)
	for _, detail := range snapshot.PatternDetails {
		canonical, entry, ok := restorePattern(detail)
		if !ok {
			skipped++
			continue
		}
		m.patterns[canonical] = entry
		loaded++
	}
	return loaded, skipped
}

func restorePattern(detail PatternDetail) (string, *conditionalProbability, bool) {
	if _, ok := domain.ParseBoard(detail.BoardState); !ok {
		return "", nil, false
	}
	if detail.Observations < 0 || len(detail.Probabilities) == 0 {
		return "", nil, false
	}
	canonical, transform := Canonicalize(detail.BoardState)
	entry := &conditionalProbability{
		moveProbs:    make(map[int]float64, len(detail.Probabilities)),
		observations: detail.Observations,
	}
	for _, mp := range detail.Probabilities {
		if mp.Move < 0 || mp.Move >= domain.BoardCells {
			return "", nil, false
		}
		if mp.Probability < 0 || math.IsNaN(mp.Probability) || math.IsInf(mp.Probability, 0) {
			return "", nil, false
		}
		entry.moveProbs[MapToCanonical(mp.Move, transform)] = mp.Probability
	}
	return canonical, entry, true
}
