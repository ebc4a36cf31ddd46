package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

// IndexJob asks for one application's points to be rebuilt from its saved
// insights. Removed applications only have their points deleted.
type IndexJob struct {
	OwnerID       uuid.UUID
	ApplicationID uuid.UUID
	Removed       bool
}

type IndexQueue interface {
	Enqueue(job IndexJob)
}

type Worker interface {
	IndexQueue
	Start(ctx context.Context)
	Stop()
}

type worker struct {
	appRepo     repositories.ApplicationRepository
	index       InsightIndex
	jobQueue    chan IndexJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewWorker(
	appRepo repositories.ApplicationRepository,
	index InsightIndex,
	concurrency int,
	queueSize int,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &worker{
		appRepo:     appRepo,
		index:       index,
		jobQueue:    make(chan IndexJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting index worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs already queued are processed before it returns.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping index worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Index worker stopped")
	})
}

// Enqueue implements IndexQueue. It never blocks the request path: when the
// queue is full the job is dropped and the reindex script can catch up later.
func (w *worker) Enqueue(job IndexJob) {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Index worker stopped, dropping job for %s\n", job.ApplicationID)
		return
	default:
	}

	select {
	case w.jobQueue <- job:
	default:
		log.Printf("⚠️  Index queue full, dropping job for %s\n", job.ApplicationID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case job := <-w.jobQueue:
			w.handle(ctx, workerID, job)
		case <-w.stopChan:
			// drain
			for {
				select {
				case job := <-w.jobQueue:
					w.handle(ctx, workerID, job)
				default:
					return
				}
			}
		}
	}
}

func (w *worker) handle(ctx context.Context, workerID int, job IndexJob) {
	if err := w.process(ctx, job); err != nil {
		log.Printf("❌ Worker #%d failed to index %s: %v\n", workerID, job.ApplicationID, err)
	}
}

func (w *worker) process(ctx context.Context, job IndexJob) error {
	if job.Removed {
		return w.index.DeleteApplication(ctx, job.OwnerID, job.ApplicationID)
	}

	app, err := w.appRepo.FindByID(job.OwnerID, job.ApplicationID)
	if err != nil {
		var notFound *models.ApplicationNotFoundError
		if errors.As(err, &notFound) {
			return w.index.DeleteApplication(ctx, job.OwnerID, job.ApplicationID)
		}
		return err
	}

	return w.index.IndexApplication(ctx, app)
}

type nopIndexQueue struct{}

// NewNopIndexQueue discards jobs; used when the insight index is disabled.
func NewNopIndexQueue() IndexQueue {
	return nopIndexQueue{}
}

func (nopIndexQueue) Enqueue(IndexJob) {}
