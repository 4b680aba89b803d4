package learning

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

// StrategyNames lists the 8 bandit arms in their fixed order.
var StrategyNames = []string{
	"minimax",
	"mcts",
	"bayesian",
	"aggressive",
	"defensive",
	"corners",
	"center",
	"random",
}

// Arms are seeded away from zero so no strategy starts with zero sampling
// probability.
const (
	SEED_WINS   = 1
	SEED_LOSSES = 1
	SEED_DRAWS  = 1
	SEED_ALPHA  = 1.0
	SEED_BETA   = 1.0
)

type StrategyStats struct {
	Wins   int
	Losses int
	Draws  int
	Total  int
	Alpha  float64
	Beta   float64
}

func seededStats() *StrategyStats {
	return &StrategyStats{
		Wins:   SEED_WINS,
		Losses: SEED_LOSSES,
		Draws:  SEED_DRAWS,
		Total:  SEED_WINS + SEED_LOSSES + SEED_DRAWS,
		Alpha:  SEED_ALPHA,
		Beta:   SEED_BETA,
	}
}

// StrategySelector picks among the 8 move-generation strategies with
// Thompson sampling over per-arm Beta beliefs. Safe for concurrent use.
type StrategySelector struct {
	mu      sync.Mutex
	stats   map[string]*StrategyStats
	current string
	rng     *rand.Rand
}

func NewStrategySelector(rng *rand.Rand) *StrategySelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &StrategySelector{
		stats: make(map[string]*StrategyStats, len(StrategyNames)),
		rng:   rng,
	}
	for _, name := range StrategyNames {
		s.stats[name] = seededStats()
	}
	return s
}

// sampleBeta draws from Beta(alpha, beta) with the ratio-of-powers
// approximation x=u^(1/alpha), y=v^(1/beta), x/(x+y). Only relative ranking
// across arms matters, so the approximation is kept as-is.
func (s *StrategySelector) sampleBeta(alpha, beta float64) float64 {
	u := s.rng.Float64()
	v := s.rng.Float64()
	x := math.Pow(u, 1/alpha)
	y := math.Pow(v, 1/beta)
	if x+y == 0 {
		return 0.5
	}
	return x / (x + y)
}

// SelectStrategy samples every arm and records the winner as the current
// strategy.
func (s *StrategySelector) SelectStrategy() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := StrategyNames[0]
	bestSample := -1.0
	for _, name := range StrategyNames {
		stats := s.stats[name]
		sample := s.sampleBeta(stats.Alpha, stats.Beta)
		if sample > bestSample {
			bestSample = sample
			best = name
		}
	}
	s.current = best
	return best
}

func (s *StrategySelector) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// RecordOutcome credits the currently selected arm with the game result from
// the AI's perspective. A draw is weak evidence for both tails, so neither
// the win nor the loss belief collapses on drawn games.
func (s *StrategySelector) RecordOutcome(winner, aiMark domain.Mark) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.stats[s.current]
	if !ok {
		return
	}

	switch {
	case winner == aiMark:
		stats.Wins++
		stats.Alpha += 1
	case winner == domain.Empty:
		stats.Draws++
		stats.Alpha += 0.5
		stats.Beta += 0.5
	default:
		stats.Losses++
		stats.Beta += 1
	}
	stats.Total++
}

// Reset restores every arm to its seed stats.
func (s *StrategySelector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range StrategyNames {
		s.stats[name] = seededStats()
	}
	s.current = ""
}

// Snapshot exports all arms in the persistence blob shape.
func (s *StrategySelector) Snapshot() BanditSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	strategies := make([]StrategySnapshot, 0, len(StrategyNames))
	for _, name := range StrategyNames {
		stats := s.stats[name]
		winRate := 0.0
		if stats.Total > 0 {
			winRate = float64(stats.Wins) / float64(stats.Total)
		}
		strategies = append(strategies, StrategySnapshot{
			Name:          name,
			Wins:          stats.Wins,
			Losses:        stats.Losses,
			Draws:         stats.Draws,
			Total:         stats.Total,
			WinRate:       winRate,
			Alpha:         stats.Alpha,
			Beta:          stats.Beta,
			ExpectedValue: stats.Alpha / (stats.Alpha + stats.Beta),
		})
	}

	return BanditSnapshot{
		Version:         SnapshotVersion,
		UpdatedAt:       time.Now().UTC(),
		Strategies:      strategies,
		CurrentStrategy: s.current,
	}
}

// Restore rebuilds arm stats from a snapshot. Entries for unknown arms or
// with non-positive Beta parameters are skipped; untouched arms keep their
// seed stats.
func (s *StrategySelector) Restore(snapshot BanditSnapshot) (loaded, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range StrategyNames {
		s.stats[name] = seededStats()
	}
	for _, entry := range snapshot.Strategies {
		stats, ok := s.stats[entry.Name]
		if !ok {
			skipped++
			continue
		}
		if entry.Alpha <= 0 || entry.Beta <= 0 ||
			math.IsNaN(entry.Alpha) || math.IsNaN(entry.Beta) ||
			entry.Wins < 0 || entry.Losses < 0 || entry.Draws < 0 {
			skipped++
			continue
		}
		stats.Wins = entry.Wins
		stats.Losses = entry.Losses
		stats.Draws = entry.Draws
		stats.Total = entry.Total
		stats.Alpha = entry.Alpha
		stats.Beta = entry.Beta
		loaded++
	}
	s.current = snapshot.CurrentStrategy
	return loaded, skipped
}
