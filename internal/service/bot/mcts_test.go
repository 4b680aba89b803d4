package bot

import (
	"math/rand"
	"testing"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

func newTestPlanner() *MCTSPlanner {
	return NewMCTSPlanner(rand.New(rand.NewSource(42)))
}

func TestMCTSTakesImmediateWin(t *testing.T) {
	planner := newTestPlanner()
	board := mustBoard(t, "XX----OO-")
	got := planner.BestMove(board, domain.MarkX, domain.VariantClassic, nil, nil, 100, time.Second)
	if got != 2 {
		t.Fatalf("expected winning move 2, got %d", got)
	}
}

func TestMCTSBlocksImmediateLoss(t *testing.T) {
	planner := newTestPlanner()
	board := mustBoard(t, "OO----X--")
	got := planner.BestMove(board, domain.MarkX, domain.VariantClassic, nil, nil, 100, time.Second)
	if got != 2 {
		t.Fatalf("expected block at 2, got %d", got)
	}
}

func TestMCTSReturnsLegalMove(t *testing.T) {
	planner := newTestPlanner()
	for _, variant := range []domain.Variant{domain.VariantClassic, domain.VariantLimited} {
		board := mustBoard(t, "X---O----")
		got := planner.BestMove(board, domain.MarkX, variant, domain.PieceHistory{0}, domain.PieceHistory{4}, 300, time.Second)
		if !domain.IsValidMove(board, got) {
			t.Fatalf("variant %s: expected legal move, got %d", variant, got)
		}
	}
}

func TestMCTSRespectsTimeBudget(t *testing.T) {
	planner := newTestPlanner()
	board := mustBoard(t, "X---O----")
	budget := 50 * time.Millisecond

	start := time.Now()
	got := planner.BestMove(board, domain.MarkX, domain.VariantLimited, domain.PieceHistory{0}, domain.PieceHistory{4}, 1<<30, budget)
	elapsed := time.Since(start)

	if !domain.IsValidMove(board, got) {
		t.Fatalf("expected legal move, got %d", got)
	}
	if elapsed > time.Second {
		t.Fatalf("search overran its budget: %v", elapsed)
	}
}

func TestMCTSFullBoardReturnsMinusOne(t *testing.T) {
	planner := newTestPlanner()
	board := mustBoard(t, "XOXOXOOXO")
	if got := planner.BestMove(board, domain.MarkX, domain.VariantClassic, nil, nil, 100, time.Second); got != -1 {
		t.Fatalf("expected -1 on full board, got %d", got)
	}
}

func TestMCTSDoesNotMutateBoard(t *testing.T) {
	planner := newTestPlanner()
	state := "X---O----"
	board := mustBoard(t, state)
	planner.BestMove(board, domain.MarkX, domain.VariantClassic, nil, nil, 200, time.Second)
	if got := domain.Serialize(board); got != state {
		t.Fatalf("search mutated board: %q", got)
	}
}
