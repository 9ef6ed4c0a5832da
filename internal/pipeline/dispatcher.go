package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"superhire/internal/storage"
)

type taskKind int

const (
	taskGeneration taskKind = iota
	taskAnalysis
)

type task struct {
	kind        taskKind
	jobID       string
	candidateID string
	enqueued    time.Time
}

// Dispatcher runs generation and analysis tasks on background workers so a
// slow model call never blocks a request handler. Each task runs once; there
// is no retry — the user re-triggers.
type Dispatcher struct {
	pipelines *Pipelines
	queue     chan task
	wg        sync.WaitGroup
}

func NewDispatcher(p *Pipelines, buffer int) *Dispatcher {
	return &Dispatcher{
		pipelines: p,
		queue:     make(chan task, buffer),
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start(workers int) {
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	log.Printf("[Dispatcher] %d workers started", workers)
}

// Stop drains the queue and waits for in-flight tasks.
func (d *Dispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.queue {
		ctx := context.Background()
		switch t.kind {
		case taskGeneration:
			// The pipeline records its own success/failure on the job.
			if _, err := d.pipelines.GenerateQuestions(ctx, t.jobID); err != nil {
				log.Printf("[Dispatcher] generation for job %s failed: %v", t.jobID, err)
			}
		case taskAnalysis:
			if _, err := d.pipelines.AnalyzeCandidate(ctx, t.candidateID); err != nil {
				log.Printf("[Dispatcher] analysis for candidate %s failed: %v", t.candidateID, err)
			}
		}
		log.Printf("[Dispatcher] task done (waited+ran %v)", time.Since(t.enqueued))
	}
}

// EnqueueGeneration schedules question generation for a job. A full queue is
// recorded as a generation failure so the job does not sit in pending forever.
func (d *Dispatcher) EnqueueGeneration(jobID string) {
	select {
	case d.queue <- task{kind: taskGeneration, jobID: jobID, enqueued: time.Now()}:
	default:
		log.Printf("[Dispatcher] queue full, dropping generation for job %s", jobID)
		err := d.pipelines.store.SetGenerationStatus(context.Background(), jobID,
			storage.GenerationFailed, "generation queue full, please retry")
		if err != nil {
			log.Printf("[Dispatcher] failed to record drop for job %s: %v", jobID, err)
		}
	}
}

// EnqueueAnalysis schedules candidate analysis. A dropped task leaves the
// candidate unanalyzed, indistinguishable from "not yet analyzed".
func (d *Dispatcher) EnqueueAnalysis(candidateID string) {
	select {
	case d.queue <- task{kind: taskAnalysis, candidateID: candidateID, enqueued: time.Now()}:
	default:
		log.Printf("[Dispatcher] queue full, dropping analysis for candidate %s", candidateID)
	}
}
