package pipeline

import (
	"context"
	"log"
	"sync"
	"time"
)

// WorkerConfig holds settings for the processing queue worker.
type WorkerConfig struct {
	PollInterval time.Duration
	Concurrency  int
}

// Worker polls for uploaded documents and dispatches them through the
// orchestrator. Claiming moves a document to ocr_processing atomically,
// so multiple workers never double-dispatch.
type Worker struct {
	orchestrator *Orchestrator
	cfg          WorkerConfig
	wg           sync.WaitGroup
}

// NewWorker creates a new Worker.
func NewWorker(orchestrator *Orchestrator, cfg WorkerConfig) *Worker {
	return &Worker{
		orchestrator: orchestrator,
		cfg:          cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight pipeline runs have finished.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("pipeline.Worker: started (poll=%s, concurrency=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("pipeline.Worker: shutting down, waiting for in-flight runs...")
			w.wg.Wait()
			log.Printf("pipeline.Worker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			docs, err := w.orchestrator.docs.ClaimUploaded(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("pipeline.Worker: ClaimUploaded error: %v", err)
				continue
			}

			for i := range docs {
				doc := docs[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight runs complete even during shutdown.
					runCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("pipeline.Worker: dispatching document %s", doc.ID)
					w.orchestrator.Process(runCtx, doc.ID)
				}()
			}
		}
	}
}
