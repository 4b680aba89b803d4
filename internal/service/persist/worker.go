package persist

import (
	"context"
	"log"
	"time"
)

// Worker flushes learning state on a fixed cadence so a crash loses at most
// one interval of observations.
type Worker struct {
	Store    *Store
	Interval time.Duration
}

func NewWorker(store *Store, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Worker{Store: store, Interval: interval}
}

// Start initiates the background ticker
func (w *Worker) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		for range ticker.C {
			w.runSave()
		}
	}()
	log.Println("[SAVE] Background worker started")
}

// runSave executes one periodic flush
func (w *Worker) runSave() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.Store.SaveAll(ctx); err != nil {
		log.Printf("[SAVE] Periodic save failed: %v", err)
	}
}
