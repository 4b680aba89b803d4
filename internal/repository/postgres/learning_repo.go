package postgres

import (
	"database/sql"
	"fmt"
	"time"
)

// Model keys for the two independent learning blobs.
const (
	ModelBandit   = "bandit"
	ModelBayesian = "bayesian"
)

// LearningRepo stores the serialized learning blobs, one row per model.
type LearningRepo struct {
	DB *sql.DB
}

func NewLearningRepo(db *sql.DB) *LearningRepo {
	return &LearningRepo{DB: db}
}

// SaveBlob upserts a model's serialized state.
func (r *LearningRepo) SaveBlob(model string, payload []byte, version string) error {
	query := `
	INSERT INTO learning_state (model, payload, version, updated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (model) DO UPDATE SET
		payload = EXCLUDED.payload,
		version = EXCLUDED.version,
		updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.DB.Exec(query, model, payload, version, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save %s blob: %v", model, err)
	}
	return nil
}

// LoadBlob returns a model's serialized state, or nil when none has been
// saved yet (cold start).
func (r *LearningRepo) LoadBlob(model string) ([]byte, error) {
	query := `SELECT payload FROM learning_state WHERE model = $1;`

	var payload []byte
	err := r.DB.QueryRow(query, model).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s blob: %v", model, err)
	}
	return payload, nil
}

// DeleteBlobs removes the persisted state for the given models.
func (r *LearningRepo) DeleteBlobs(models ...string) error {
	query := `DELETE FROM learning_state WHERE model = $1;`
	for _, model := range models {
		if _, err := r.DB.Exec(query, model); err != nil {
			return fmt.Errorf("failed to delete %s blob: %v", model, err)
		}
	}
	return nil
}
