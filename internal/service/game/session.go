package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
	"github.com/adaptiveplay/tictactoe/backend/internal/repository/postgres"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/bot"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/persist"
	"github.com/adaptiveplay/tictactoe/backend/pkg/uid"
)

// GameRecorder persists finished games.
type GameRecorder interface {
	SaveGame(result postgres.GameResult, boardState []int) error
}

// MoveUpdate is the payload sent back after each accepted human move.
type MoveUpdate struct {
	GameID       string            `json:"gameId"`
	Board        string            `json:"board"`
	HumanMove    int               `json:"humanMove"`
	HumanEvicted int               `json:"humanEvicted"`
	BotMove      int               `json:"botMove"`
	BotEvicted   int               `json:"botEvicted"`
	Status       domain.GameStatus `json:"status"`
	Winner       string            `json:"winner,omitempty"`
	YourTurn     bool              `json:"yourTurn"`
}

// Session is one human playing the engine. The engine and learning models
// are shared across sessions; the board state is per session.
type Session struct {
	GameID       string
	Variant      domain.Variant
	Difficulty   domain.Difficulty
	HumanMark    domain.Mark
	BotMark      domain.Mark
	Board        domain.Board
	HumanHistory domain.PieceHistory
	BotHistory   domain.PieceHistory
	ToMove       domain.Mark
	Status       domain.GameStatus
	WinnerMark   domain.Mark
	TotalMoves   int
	CreatedAt    time.Time
	FinishedAt   time.Time

	mu             sync.Mutex
	engine         *bot.Engine
	store          *persist.Store
	repo           GameRecorder
	lastBotMove    int
	lastBotEvicted int
}

// NewSession starts a game. X always moves first; when the human picked O,
// the bot opens immediately.
func NewSession(variant domain.Variant, difficulty domain.Difficulty, humanMark domain.Mark, engine *bot.Engine, store *persist.Store, repo GameRecorder) *Session {
	if humanMark != domain.MarkO {
		humanMark = domain.MarkX
	}
	s := &Session{
		GameID:     uid.GenerateGameID(),
		Variant:    variant,
		Difficulty: difficulty,
		HumanMark:  humanMark,
		BotMark:    humanMark.Opponent(),
		Board:      domain.NewBoard(),
		ToMove:     domain.MarkX,
		Status:     domain.StatusActive,
		CreatedAt:  time.Now(),
		engine:     engine,
		store:      store,
		repo:       repo,

		lastBotMove:    -1,
		lastBotEvicted: -1,
	}
	if s.ToMove == s.BotMark {
		s.playBotMove()
	}
	return s
}

// OpeningUpdate reports the state right after session creation, including a
// bot opening move if the bot is X.
func (s *Session) OpeningUpdate() MoveUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MoveUpdate{
		GameID:       s.GameID,
		Board:        domain.Serialize(s.Board),
		HumanMove:    -1,
		HumanEvicted: -1,
		BotMove:      s.lastBotMove,
		BotEvicted:   s.lastBotEvicted,
		Status:       s.Status,
		YourTurn:     s.ToMove == s.HumanMark,
	}
}

// HandleHumanMove validates and applies the human's move, feeds the
// observation into the opponent model, and answers with the bot's reply.
func (s *Session) HandleHumanMove(cell int) (MoveUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != domain.StatusActive {
		return MoveUpdate{}, domain.ErrGameOver
	}
	if s.ToMove != s.HumanMark {
		return MoveUpdate{}, domain.ErrNotYourTurn
	}

	boardBefore := domain.CopyBoard(s.Board)
	humanEvicted, err := domain.ApplyMove(s.Board, &s.HumanHistory, cell, s.HumanMark, s.Variant)
	if err != nil {
		return MoveUpdate{}, err
	}
	s.TotalMoves++
	s.engine.ObservePlayerMove(boardBefore, cell)
	s.advanceTurn()

	update := MoveUpdate{
		GameID:       s.GameID,
		Board:        domain.Serialize(s.Board),
		HumanMove:    cell,
		HumanEvicted: humanEvicted,
		BotMove:      -1,
		BotEvicted:   -1,
	}

	if s.checkGameEnd() {
		update.Board = domain.Serialize(s.Board)
		update.Status = s.Status
		update.Winner = winnerString(s.WinnerMark)
		return update, nil
	}

	s.playBotMove()
	update.Board = domain.Serialize(s.Board)
	update.BotMove = s.lastBotMove
	update.BotEvicted = s.lastBotEvicted
	s.checkGameEnd()
	update.Status = s.Status
	update.Winner = winnerString(s.WinnerMark)
	update.YourTurn = s.Status == domain.StatusActive && s.ToMove == s.HumanMark
	return update, nil
}

func (s *Session) playBotMove() {
	req := bot.MoveRequest{
		Board:      s.Board,
		AIMark:     s.BotMark,
		Variant:    s.Variant,
		AIHistory:  s.BotHistory,
		OppHistory: s.HumanHistory,
	}
	move := s.engine.ComputeMove(req, s.Difficulty)
	s.lastBotMove = move
	s.lastBotEvicted = -1
	if move < 0 {
		return
	}
	evicted, err := domain.ApplyMove(s.Board, &s.BotHistory, move, s.BotMark, s.Variant)
	if err != nil {
		log.Printf("[SESSION] Bot produced invalid move %d in game %s: %v", move, s.GameID, err)
		return
	}
	s.lastBotEvicted = evicted
	s.TotalMoves++
	s.advanceTurn()
}

func (s *Session) advanceTurn() {
	s.ToMove = s.ToMove.Opponent()
}

// checkGameEnd updates status and, on a finished game, records the outcome
// and flushes learning state. The caller holds s.mu; everything the persist
// goroutine needs is copied out here so it never touches session fields.
func (s *Session) checkGameEnd() bool {
	winner := domain.Winner(s.Board)
	boardFull := s.Variant == domain.VariantClassic && domain.IsBoardFull(s.Board)
	if winner == domain.Empty && !boardFull {
		return false
	}

	s.WinnerMark = winner
	if winner == domain.Empty {
		s.Status = domain.StatusDraw
	} else {
		s.Status = domain.StatusWon
	}
	s.FinishedAt = time.Now()

	s.engine.RecordGameOutcome(winner, s.BotMark)

	cells := make([]int, len(s.Board))
	for i, mark := range s.Board {
		cells[i] = int(mark)
	}
	result := postgres.GameResult{
		GameID:          s.GameID,
		Variant:         string(s.Variant),
		Difficulty:      string(s.Difficulty),
		HumanMark:       string(s.HumanMark.Symbol()),
		WinnerMark:      winnerString(s.WinnerMark),
		TotalMoves:      s.TotalMoves,
		DurationSeconds: int(s.FinishedAt.Sub(s.CreatedAt).Seconds()),
		CreatedAt:       s.CreatedAt,
		FinishedAt:      s.FinishedAt,
	}
	go s.persistOutcome(result, cells)
	return true
}

func (s *Session) persistOutcome(result postgres.GameResult, cells []int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		if err := s.store.SaveAll(ctx); err != nil {
			log.Printf("[SESSION] Saving learning state after game %s failed: %v", result.GameID, err)
		}
	}
	if s.repo != nil {
		if err := s.repo.SaveGame(result, cells); err != nil {
			log.Printf("[SESSION] Recording game %s failed: %v", result.GameID, err)
		}
	}
}

func winnerString(mark domain.Mark) string {
	if mark == domain.Empty {
		return ""
	}
	return string(mark.Symbol())
}
