package persist

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/repository/postgres"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/learning"
)

// BlobRepository is the durable side of the learning store.
type BlobRepository interface {
	SaveBlob(model string, payload []byte, version string) error
	LoadBlob(model string) ([]byte, error)
	DeleteBlobs(models ...string) error
}

// Cache is the optional fast path in front of the repository.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

const (
	cacheKeyBandit   = "learning:bandit"
	cacheKeyBayesian = "learning:bayesian"
	cacheTTL         = 10 * time.Minute
)

// Store owns serialization of both learning models. It depends on the
// models, never the other way around.
type Store struct {
	repo     BlobRepository
	cache    Cache // nil when Redis is unavailable
	opponent *learning.OpponentModel
	selector *learning.StrategySelector
}

func NewStore(repo BlobRepository, cache Cache, opponent *learning.OpponentModel, selector *learning.StrategySelector) *Store {
	return &Store{repo: repo, cache: cache, opponent: opponent, selector: selector}
}

// Opponent exposes the Bayesian model for read-only stats endpoints.
func (s *Store) Opponent() *learning.OpponentModel {
	return s.opponent
}

// Selector exposes the bandit for read-only stats endpoints.
func (s *Store) Selector() *learning.StrategySelector {
	return s.selector
}

// SaveAll serializes both models and writes them to the repository, updating
// the cache best-effort.
func (s *Store) SaveAll(ctx context.Context) error {
	banditBlob, err := json.Marshal(s.selector.Snapshot())
	if err != nil {
		return err
	}
	bayesianBlob, err := json.Marshal(s.opponent.Snapshot())
	if err != nil {
		return err
	}

	if err := s.repo.SaveBlob(postgres.ModelBandit, banditBlob, learning.SnapshotVersion); err != nil {
		return err
	}
	if err := s.repo.SaveBlob(postgres.ModelBayesian, bayesianBlob, learning.SnapshotVersion); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyBandit, string(banditBlob), cacheTTL); err != nil {
			log.Printf("[SAVE] Cache write for bandit state failed: %v", err)
		}
		if err := s.cache.Set(ctx, cacheKeyBayesian, string(bayesianBlob), cacheTTL); err != nil {
			log.Printf("[SAVE] Cache write for bayesian state failed: %v", err)
		}
	}
	return nil
}

// LoadAll restores both models. A missing or unparsable blob leaves that
// model in its cold-start state; malformed entries inside a blob are skipped
// by the models themselves.
func (s *Store) LoadAll(ctx context.Context) {
	if blob := s.fetchBlob(ctx, cacheKeyBandit, postgres.ModelBandit); blob != nil {
		var snapshot learning.BanditSnapshot
		if err := json.Unmarshal(blob, &snapshot); err != nil {
			log.Printf("[SAVE] Bandit blob unparsable, starting cold: %v", err)
		} else {
			loaded, skipped := s.selector.Restore(snapshot)
			log.Printf("[SAVE] Restored bandit state: %d arms loaded, %d skipped", loaded, skipped)
		}
	} else {
		log.Println("[SAVE] No bandit state found, starting cold")
	}

	if blob := s.fetchBlob(ctx, cacheKeyBayesian, postgres.ModelBayesian); blob != nil {
		var snapshot learning.BayesianSnapshot
		if err := json.Unmarshal(blob, &snapshot); err != nil {
			log.Printf("[SAVE] Bayesian blob unparsable, starting cold: %v", err)
		} else {
			loaded, skipped := s.opponent.Restore(snapshot)
			log.Printf("[SAVE] Restored bayesian state: %d patterns loaded, %d skipped", loaded, skipped)
		}
	} else {
		log.Println("[SAVE] No bayesian state found, starting cold")
	}
}

func (s *Store) fetchBlob(ctx context.Context, cacheKey, model string) []byte {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return []byte(cached)
		}
	}
	blob, err := s.repo.LoadBlob(model)
	if err != nil {
		log.Printf("[SAVE] Failed to load %s blob: %v", model, err)
		return nil
	}
	return blob
}

// ResetAll clears both models in memory, durable rows and cache keys.
func (s *Store) ResetAll(ctx context.Context) error {
	s.opponent.Reset()
	s.selector.Reset()

	if err := s.repo.DeleteBlobs(postgres.ModelBandit, postgres.ModelBayesian); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKeyBandit, cacheKeyBayesian); err != nil {
			log.Printf("[SAVE] Cache delete failed: %v", err)
		}
	}
	return nil
}
