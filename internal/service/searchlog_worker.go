package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/models"
)

// SearchRecorder persists search log entries.
type SearchRecorder interface {
	RecordSearch(ctx context.Context, e *models.SearchLogEntry) error
}

// SearchLogWorker buffers search log entries and writes them from a single
// goroutine so that logging never delays a search response.
type SearchLogWorker struct {
	recorder SearchRecorder
	log      *logrus.Logger
	jobs     chan *models.SearchLogEntry
}

// NewSearchLogWorker creates a SearchLogWorker with the given queue capacity.
func NewSearchLogWorker(recorder SearchRecorder, log *logrus.Logger, queueSize int) *SearchLogWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}

	return &SearchLogWorker{
		recorder: recorder,
		log:      log,
		jobs:     make(chan *models.SearchLogEntry, queueSize),
	}
}

// Enqueue adds an entry. Non-blocking; drops the entry if the queue is full.
func (w *SearchLogWorker) Enqueue(e *models.SearchLogEntry) {
	select {
	case w.jobs <- e:
	default:
		w.log.WithField("tenant_id", e.TenantID).Warn("search log queue full, dropping entry")
	}
}

// Run writes entries until the context is cancelled, then drains the rest.
func (w *SearchLogWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()

			return
		case e := <-w.jobs:
			w.process(e)
		}
	}
}

func (w *SearchLogWorker) drain() {
	for {
		select {
		case e := <-w.jobs:
			w.process(e)
		default:
			return
		}
	}
}

func (w *SearchLogWorker) process(e *models.SearchLogEntry) {
	if err := w.recorder.RecordSearch(context.Background(), e); err != nil {
		w.log.WithError(err).Warn("search log record failed")
	}
}
