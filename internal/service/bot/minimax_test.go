package bot

import (
	"sync"
	"testing"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

func TestBestMoveOpensWithCenter(t *testing.T) {
	search := NewExactSearch()
	if got := search.BestMove(domain.NewBoard(), domain.MarkX); got != domain.CenterCell {
		t.Fatalf("expected center opening, got %d", got)
	}
}

func TestBestMoveTakesImmediateWin(t *testing.T) {
	search := NewExactSearch()
	board := mustBoard(t, "XX----OO-")
	if got := search.BestMove(board, domain.MarkX); got != 2 {
		t.Fatalf("expected winning move 2, got %d", got)
	}
}

func TestBestMovePrefersWinOverBlock(t *testing.T) {
	search := NewExactSearch()
	// X can win at 2; O threatens at 3. Winning must come first.
	board := mustBoard(t, "XX--OO---")
	if got := search.BestMove(board, domain.MarkX); got != 2 {
		t.Fatalf("expected win at 2 over block, got %d", got)
	}
}

func TestBestMoveBlocksOpponentWin(t *testing.T) {
	search := NewExactSearch()
	board := mustBoard(t, "OO--X----")
	if got := search.BestMove(board, domain.MarkX); got != 2 {
		t.Fatalf("expected block at 2, got %d", got)
	}
}

func TestBestMoveTakesOwnFork(t *testing.T) {
	search := NewExactSearch()
	board := mustBoard(t, "X---O---X")
	if got := search.BestMove(board, domain.MarkX); got != 2 {
		t.Fatalf("expected fork at 2, got %d", got)
	}
}

func TestBestMoveWithCounterPreemptsPredictedCell(t *testing.T) {
	search := NewExactSearch()
	board := mustBoard(t, "----X---O")
	counter := func(domain.Board) int { return 0 }
	if got := search.BestMoveWithCounter(board, domain.MarkX, counter); got != 0 {
		t.Fatalf("expected counter preemption at 0, got %d", got)
	}
}

func TestBestMoveIgnoresCounterSuggestingOccupiedCell(t *testing.T) {
	search := NewExactSearch()
	board := mustBoard(t, "----X---O")
	counter := func(domain.Board) int { return 8 }
	got := search.BestMoveWithCounter(board, domain.MarkX, counter)
	if !domain.IsValidMove(board, got) {
		t.Fatalf("expected a legal fallback move, got %d", got)
	}
}

func TestBestMoveDeterministicAcrossMemoReuse(t *testing.T) {
	search := NewExactSearch()
	board := mustBoard(t, "X-O-X-O--")
	first := search.BestMove(domain.CopyBoard(board), domain.MarkX)
	second := search.BestMove(domain.CopyBoard(board), domain.MarkX)
	if first != second {
		t.Fatalf("memo reuse changed the move: %d vs %d", first, second)
	}
}

func TestBestMoveFullBoardReturnsMinusOne(t *testing.T) {
	search := NewExactSearch()
	board := mustBoard(t, "XOXOXOOXO")
	if got := search.BestMove(board, domain.MarkX); got != -1 {
		t.Fatalf("expected -1 on full board, got %d", got)
	}
}

func TestBestMoveLeavesBoardUnchanged(t *testing.T) {
	search := NewExactSearch()
	state := "X-O-X-O--"
	board := mustBoard(t, state)
	search.BestMove(board, domain.MarkX)
	if got := domain.Serialize(board); got != state {
		t.Fatalf("search mutated board: %q", got)
	}
}

// One ExactSearch serves every request goroutine in the service, so
// concurrent full searches must not trip over the shared memo.
func TestBestMoveSafeForConcurrentCallers(t *testing.T) {
	search := NewExactSearch()
	state := "X---O----" // center taken, ladder falls through to full search
	want := search.BestMove(mustBoard(t, state), domain.MarkX)

	const callers = 8
	results := make([]int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			for round := 0; round < 20; round++ {
				results[slot] = search.BestMove(mustBoard(t, state), domain.MarkX)
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Fatalf("caller %d got %d, want %d", i, got, want)
		}
	}
}
