package domain

import "testing"

func mustBoard(t *testing.T, s string) Board {
	t.Helper()
	board, ok := ParseBoard(s)
	if !ok {
		t.Fatalf("failed to parse board %q", s)
	}
	return board
}

func TestCheckWinDetectsRowsColumnsAndDiagonals(t *testing.T) {
	cases := []struct {
		state string
		mark  Mark
	}{
		{"XXX------", MarkX},
		{"---OOO---", MarkO},
		{"X--X--X--", MarkX},
		{"O---O---O", MarkO},
		{"--X-X-X--", MarkX},
	}
	for _, tc := range cases {
		board := mustBoard(t, tc.state)
		if !CheckWin(board, tc.mark) {
			t.Errorf("expected win for %c on %q", tc.mark.Symbol(), tc.state)
		}
		if Winner(board) != tc.mark {
			t.Errorf("expected winner %c on %q", tc.mark.Symbol(), tc.state)
		}
	}
}

func TestWinnerEmptyWhenNoLineComplete(t *testing.T) {
	board := mustBoard(t, "XOXOXO-X-")
	if got := Winner(board); got != Empty {
		t.Fatalf("expected no winner, got %c", got.Symbol())
	}
}

func TestGetValidMovesReturnsEmptyCellsInOrder(t *testing.T) {
	board := mustBoard(t, "X-O-X-O--")
	want := []int{1, 3, 5, 7, 8}
	got := GetValidMoves(board)
	if len(got) != len(want) {
		t.Fatalf("expected %d moves, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected moves %v, got %v", want, got)
		}
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	state := "XO-X--O-X"
	board := mustBoard(t, state)
	if got := Serialize(board); got != state {
		t.Fatalf("expected %q, got %q", state, got)
	}
}

func TestParseBoardRejectsBadInput(t *testing.T) {
	if _, ok := ParseBoard("XO-"); ok {
		t.Fatal("expected short string to be rejected")
	}
	if _, ok := ParseBoard("XO-X--O-Z"); ok {
		t.Fatal("expected unknown character to be rejected")
	}
}

func TestIsValidMoveBounds(t *testing.T) {
	board := mustBoard(t, "X--------")
	if IsValidMove(board, 0) {
		t.Fatal("occupied cell should be invalid")
	}
	if IsValidMove(board, -1) || IsValidMove(board, 9) {
		t.Fatal("out-of-range cells should be invalid")
	}
	if !IsValidMove(board, 4) {
		t.Fatal("empty cell should be valid")
	}
}
