package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/persistorai/motif/internal/models"
)

func TestSearchLogWorker_ProcessesEntry(t *testing.T) {
	rec := &mockRecorder{}

	w := NewSearchLogWorker(rec, testLogger(), 10)
	ctx, cancel := context.WithCancel(context.Background())

	go w.Run(ctx)

	w.Enqueue(&models.SearchLogEntry{TenantID: "t1", Mode: "sequential", Results: 3})

	time.Sleep(50 * time.Millisecond)
	cancel()

	entries := rec.getEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if entries[0].Mode != "sequential" || entries[0].Results != 3 {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestSearchLogWorker_DropsWhenFull(t *testing.T) {
	w := NewSearchLogWorker(&mockRecorder{}, testLogger(), 2)

	w.Enqueue(&models.SearchLogEntry{Mode: "a"})
	w.Enqueue(&models.SearchLogEntry{Mode: "b"})

	done := make(chan struct{})

	go func() {
		w.Enqueue(&models.SearchLogEntry{Mode: "c"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked when queue was full")
	}

	if len(w.jobs) != 2 {
		t.Errorf("queue len = %d, want 2", len(w.jobs))
	}
}

func TestSearchLogWorker_StopDrains(t *testing.T) {
	rec := &mockRecorder{}
	w := NewSearchLogWorker(rec, testLogger(), 100)

	for range 5 {
		w.Enqueue(&models.SearchLogEntry{Mode: "count"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)

	if n := len(rec.getEntries()); n != 5 {
		t.Errorf("drained %d entries, want 5", n)
	}
}

func TestSearchLogWorker_RecorderErrorIsNotFatal(t *testing.T) {
	rec := &mockRecorder{err: errors.New("insert failed")}
	w := NewSearchLogWorker(rec, testLogger(), 10)

	w.Enqueue(&models.SearchLogEntry{Mode: "a"})
	w.Enqueue(&models.SearchLogEntry{Mode: "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)

	if n := len(rec.getEntries()); n != 2 {
		t.Errorf("attempted %d records, want 2", n)
	}
}

func TestNewSearchLogWorker_DefaultQueueSize(t *testing.T) {
	w := NewSearchLogWorker(&mockRecorder{}, testLogger(), 0)
	if cap(w.jobs) != 1000 {
		t.Errorf("cap = %d, want 1000", cap(w.jobs))
	}
}
