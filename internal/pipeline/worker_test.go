package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/pipeline"
)

func TestWorker_PollsAndDispatches(t *testing.T) {
	f := newFixture(t)
	docID := uuid.New()

	claimed := *uploadedDoc(docID)
	claimed.Status = domain.StatusOCRProcessing

	// First poll returns one doc, subsequent polls return empty.
	f.docs.On("ClaimUploaded", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.Document{claimed}, nil).Once()
	f.docs.On("ClaimUploaded", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.Document{}, nil).Maybe()

	// Keep the dispatched run short: the document vanishes on fetch.
	f.docs.On("GetByID", mock.Anything, docID).
		Return(nil, domain.ErrDocumentNotFound).Maybe()

	worker := pipeline.NewWorker(f.orchestrator, pipeline.WorkerConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle.
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	f.docs.AssertCalled(t, "ClaimUploaded", mock.Anything, mock.AnythingOfType("int"))
	f.docs.AssertCalled(t, "GetByID", mock.Anything, docID)
}

func TestWorker_SurvivesClaimErrors(t *testing.T) {
	f := newFixture(t)

	f.docs.On("ClaimUploaded", mock.Anything, mock.AnythingOfType("int")).
		Return(nil, errors.New("connection reset")).Maybe()

	worker := pipeline.NewWorker(f.orchestrator, pipeline.WorkerConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not shut down")
	}
}
