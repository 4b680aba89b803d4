package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
	"github.com/adaptiveplay/tictactoe/backend/internal/repository/postgres"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/bot"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/learning"
)

type recordingRepo struct {
	mu     sync.Mutex
	saved  []postgres.GameResult
	boards [][]int
}

func (r *recordingRepo) SaveGame(result postgres.GameResult, boardState []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, result)
	r.boards = append(r.boards, boardState)
	return nil
}

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func newTestEngine() *bot.Engine {
	opponent := learning.NewOpponentModel()
	selector := learning.NewStrategySelector(rand.New(rand.NewSource(2)))
	return bot.NewEngine(opponent, selector, rand.New(rand.NewSource(2)))
}

func TestNewSessionHumanXMovesFirst(t *testing.T) {
	session := NewSession(domain.VariantClassic, domain.DifficultyEasy, domain.MarkX, newTestEngine(), nil, nil)
	update := session.OpeningUpdate()
	if !update.YourTurn {
		t.Fatal("human playing X should open")
	}
	if update.BotMove != -1 {
		t.Fatalf("bot should not have moved yet, got %d", update.BotMove)
	}
	if update.Board != "---------" {
		t.Fatalf("expected empty board, got %q", update.Board)
	}
}

func TestNewSessionBotOpensWhenHumanPlaysO(t *testing.T) {
	session := NewSession(domain.VariantClassic, domain.DifficultyHard, domain.MarkO, newTestEngine(), nil, nil)
	update := session.OpeningUpdate()
	if update.BotMove == -1 {
		t.Fatal("bot playing X should open immediately")
	}
	if !update.YourTurn {
		t.Fatal("turn should pass to the human after the bot's opening")
	}
}

func TestHandleHumanMoveAppliesMoveAndBotReplies(t *testing.T) {
	session := NewSession(domain.VariantClassic, domain.DifficultyEasy, domain.MarkX, newTestEngine(), nil, nil)

	update, err := session.HandleHumanMove(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if update.HumanMove != 4 {
		t.Fatalf("expected human move 4, got %d", update.HumanMove)
	}
	if update.BotMove == -1 {
		t.Fatal("expected a bot reply")
	}
	if update.Status != domain.StatusActive {
		t.Fatalf("game should still be active, got %s", update.Status)
	}
	if !update.YourTurn {
		t.Fatal("turn should return to the human")
	}
}

func TestHandleHumanMoveRejectsOccupiedCell(t *testing.T) {
	session := NewSession(domain.VariantClassic, domain.DifficultyEasy, domain.MarkX, newTestEngine(), nil, nil)
	if _, err := session.HandleHumanMove(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := session.HandleHumanMove(4); err != domain.ErrCellOccupied {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
}

func TestHandleHumanMoveRejectsOutOfTurn(t *testing.T) {
	engine := newTestEngine()
	session := NewSession(domain.VariantClassic, domain.DifficultyEasy, domain.MarkO, engine, nil, nil)
	// Force the state machine out of the human's turn.
	session.ToMove = session.BotMark
	if _, err := session.HandleHumanMove(1); err != domain.ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestGameRunsToCompletionAndIsRecorded(t *testing.T) {
	repo := &recordingRepo{}
	session := NewSession(domain.VariantClassic, domain.DifficultyHard, domain.MarkX, newTestEngine(), nil, repo)

	// Play the human's moves mechanically until the game ends.
	for moves := 0; moves < domain.BoardCells; moves++ {
		if session.Status != domain.StatusActive {
			break
		}
		cell := -1
		for c := 0; c < domain.BoardCells; c++ {
			if session.Board[c] == domain.Empty {
				cell = c
				break
			}
		}
		if cell == -1 {
			break
		}
		if _, err := session.HandleHumanMove(cell); err != nil {
			t.Fatalf("move %d failed: %v", cell, err)
		}
	}

	if session.Status == domain.StatusActive {
		t.Fatal("game should have finished")
	}
	if session.Status == domain.StatusWon && session.WinnerMark == domain.Empty {
		t.Fatal("won game must carry a winner")
	}

	// The finished game is persisted on a background goroutine.
	deadline := time.Now().Add(2 * time.Second)
	for repo.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if repo.count() != 1 {
		t.Fatalf("expected 1 recorded game, got %d", repo.count())
	}

	repo.mu.Lock()
	result := repo.saved[0]
	repo.mu.Unlock()
	if result.GameID != session.GameID {
		t.Fatalf("recorded wrong game: %q vs %q", result.GameID, session.GameID)
	}
	if result.TotalMoves != session.TotalMoves {
		t.Fatalf("recorded %d moves, session saw %d", result.TotalMoves, session.TotalMoves)
	}
}

// The persisted record is copied out while the session lock is held, so
// later changes to the session must not leak into it.
func TestRecordedGameSnapshotsFinalBoard(t *testing.T) {
	repo := &recordingRepo{}
	session := NewSession(domain.VariantClassic, domain.DifficultyHard, domain.MarkX, newTestEngine(), nil, repo)

	for moves := 0; moves < domain.BoardCells && session.Status == domain.StatusActive; moves++ {
		cell := -1
		for c := 0; c < domain.BoardCells; c++ {
			if session.Board[c] == domain.Empty {
				cell = c
				break
			}
		}
		if cell == -1 {
			break
		}
		if _, err := session.HandleHumanMove(cell); err != nil {
			t.Fatalf("move %d failed: %v", cell, err)
		}
	}
	if session.Status == domain.StatusActive {
		t.Fatal("game should have finished")
	}

	finalCells := make([]int, domain.BoardCells)
	for c := 0; c < domain.BoardCells; c++ {
		finalCells[c] = int(session.Board[c])
	}

	// Clobber the session after the game ended; the record already holds
	// its own copy of the final position.
	for c := 0; c < domain.BoardCells; c++ {
		session.Board[c] = domain.Empty
	}

	deadline := time.Now().Add(2 * time.Second)
	for repo.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if repo.count() != 1 {
		t.Fatalf("expected 1 recorded game, got %d", repo.count())
	}

	repo.mu.Lock()
	recorded := repo.boards[0]
	repo.mu.Unlock()
	if len(recorded) != len(finalCells) {
		t.Fatalf("recorded %d cells, want %d", len(recorded), len(finalCells))
	}
	for c := range finalCells {
		if recorded[c] != finalCells[c] {
			t.Fatalf("cell %d recorded as %d, final position had %d", c, recorded[c], finalCells[c])
		}
	}
}

func TestLimitedVariantGameNeverFillsBoard(t *testing.T) {
	session := NewSession(domain.VariantLimited, domain.DifficultyMedium, domain.MarkX, newTestEngine(), nil, nil)

	for moves := 0; moves < 20 && session.Status == domain.StatusActive; moves++ {
		cell := -1
		for c := 0; c < domain.BoardCells; c++ {
			if session.Board[c] == domain.Empty {
				cell = c
				break
			}
		}
		if cell == -1 {
			t.Fatal("limited variant board should never fill up")
		}
		if _, err := session.HandleHumanMove(cell); err != nil {
			t.Fatalf("move %d failed: %v", cell, err)
		}

		pieces := 0
		for c := 0; c < domain.BoardCells; c++ {
			if session.Board[c] != domain.Empty {
				pieces++
			}
		}
		if pieces > 2*domain.MaxLivePieces {
			t.Fatalf("more than %d live pieces on the board", 2*domain.MaxLivePieces)
		}
	}
}

func TestSessionManagerLifecycle(t *testing.T) {
	manager := NewSessionManager(newTestEngine(), nil, nil)

	session := manager.StartGame("guest-1", domain.VariantClassic, domain.DifficultyEasy, domain.MarkX)
	if session == nil {
		t.Fatal("expected a session")
	}
	if got, ok := manager.GetSession("guest-1"); !ok || got != session {
		t.Fatal("session not retrievable")
	}
	if manager.ActiveCount() != 1 {
		t.Fatalf("expected 1 active game, got %d", manager.ActiveCount())
	}

	replacement := manager.StartGame("guest-1", domain.VariantLimited, domain.DifficultyHard, domain.MarkO)
	if replacement == session {
		t.Fatal("starting a new game should replace the old session")
	}
	if manager.ActiveCount() != 1 {
		t.Fatalf("expected replacement, got %d active games", manager.ActiveCount())
	}

	manager.RemoveSession("guest-1")
	if _, ok := manager.GetSession("guest-1"); ok {
		t.Fatal("session should be gone after removal")
	}
	if manager.ActiveCount() != 0 {
		t.Fatalf("expected 0 active games, got %d", manager.ActiveCount())
	}
}
