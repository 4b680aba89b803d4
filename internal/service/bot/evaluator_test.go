package bot

import (
	"testing"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
)

func mustBoard(t *testing.T, s string) domain.Board {
	t.Helper()
	board, ok := domain.ParseBoard(s)
	if !ok {
		t.Fatalf("failed to parse board %q", s)
	}
	return board
}

func TestFindWinningMoveCompletesLine(t *testing.T) {
	board := mustBoard(t, "XX-------")
	if got := FindWinningMove(board, domain.MarkX); got != 2 {
		t.Fatalf("expected winning move 2, got %d", got)
	}
	if got := FindWinningMove(board, domain.MarkO); got != -1 {
		t.Fatalf("expected no winning move for O, got %d", got)
	}
}

func TestFindWinningMoveScansLinesInCanonicalOrder(t *testing.T) {
	// Two winning completions exist; the row comes before the diagonal.
	board := mustBoard(t, "XX--X---X")
	if got := FindWinningMove(board, domain.MarkX); got != 2 {
		t.Fatalf("expected row completion 2 first, got %d", got)
	}
}

func TestFindForkMoveCreatesDoubleThreat(t *testing.T) {
	// X owns opposite corners around a blocked center. Cell 2 opens threats
	// on both the top row and the right column.
	board := mustBoard(t, "X---O---X")
	if got := FindForkMove(board, domain.MarkX); got != 2 {
		t.Fatalf("expected fork at 2, got %d", got)
	}
}

func TestFindForkMoveNoForkAvailable(t *testing.T) {
	board := mustBoard(t, "X--------")
	if got := FindForkMove(board, domain.MarkX); got != -1 {
		t.Fatalf("expected no fork, got %d", got)
	}
}

func TestCountThreats(t *testing.T) {
	if got := CountThreats(mustBoard(t, "XX-------"), domain.MarkX); got != 1 {
		t.Fatalf("expected 1 threat, got %d", got)
	}
	if got := CountThreats(mustBoard(t, "XXOX-----"), domain.MarkX); got != 1 {
		t.Fatalf("expected 1 threat on blocked row board, got %d", got)
	}
	if got := CountThreats(domain.NewBoard(), domain.MarkX); got != 0 {
		t.Fatalf("expected 0 threats on empty board, got %d", got)
	}
}

func TestEvaluateLimitedPositionPrefersCenterControl(t *testing.T) {
	centerBoard := mustBoard(t, "----X----")
	edgeBoard := mustBoard(t, "-X-------")
	center := EvaluateLimitedPosition(centerBoard, domain.MarkX, domain.PieceHistory{4}, nil)
	edge := EvaluateLimitedPosition(edgeBoard, domain.MarkX, domain.PieceHistory{1}, nil)
	if center <= edge {
		t.Fatalf("expected center (%d) to outscore edge (%d)", center, edge)
	}
}

func TestEvaluateLimitedPositionSymmetricIsZero(t *testing.T) {
	if got := EvaluateLimitedPosition(domain.NewBoard(), domain.MarkX, nil, nil); got != 0 {
		t.Fatalf("expected neutral score on empty board, got %d", got)
	}
}
