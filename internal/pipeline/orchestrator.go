// Package pipeline orchestrates the processing stages for an uploaded
// document: extraction, taxonomy mapping, carbon calculation, audit and
// finalization, with the document status row tracking progress.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Rahul-1611/AEROCARBON/internal/audit"
	"github.com/Rahul-1611/AEROCARBON/internal/carbon"
	"github.com/Rahul-1611/AEROCARBON/internal/config"
	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/extract"
	"github.com/Rahul-1611/AEROCARBON/internal/mapping"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

// extractionSchemaVersion tags stored extraction payloads so schema
// changes can be migrated later.
const extractionSchemaVersion = "1.0"

// Orchestrator runs the full processing pipeline for one document at a
// time. It never returns an error from Process: every failure is recorded
// in the error log and reflected in the document status instead.
type Orchestrator struct {
	docs     port.DocumentRepository
	extracts port.ExtractionRepository
	results  port.ResultRepository
	errs     port.ErrorRepository
	storage  port.ObjectStorage

	extractor *extract.Extractor
	mapper    *mapping.Mapper
	engine    *carbon.Engine
	auditor   *audit.Auditor

	settleDelay   time.Duration
	factorVersion string
	model         string
}

// Deps bundles the orchestrator's collaborators.
type Deps struct {
	Docs     port.DocumentRepository
	Extracts port.ExtractionRepository
	Results  port.ResultRepository
	Errors   port.ErrorRepository
	Storage  port.ObjectStorage

	Extractor *extract.Extractor
	Mapper    *mapping.Mapper
	Engine    *carbon.Engine
	Auditor   *audit.Auditor

	// Model names the generation model recorded alongside extractions.
	Model string
}

func NewOrchestrator(deps Deps, cfg *config.PipelineConfig) *Orchestrator {
	return &Orchestrator{
		docs:          deps.Docs,
		extracts:      deps.Extracts,
		results:       deps.Results,
		errs:          deps.Errors,
		storage:       deps.Storage,
		extractor:     deps.Extractor,
		mapper:        deps.Mapper,
		engine:        deps.Engine,
		auditor:       deps.Auditor,
		settleDelay:   cfg.SettleDelay,
		factorVersion: cfg.FactorVersion,
		model:         deps.Model,
	}
}

// Process runs every pipeline stage for the given document. Failures are
// absorbed: the error log gets a record and the document moves to failed.
// Already-finalized documents are refused so results stay immutable.
func (o *Orchestrator) Process(ctx context.Context, docID uuid.UUID) {
	log.Printf("pipeline.Orchestrator.Process: starting doc_id=%s", docID)

	doc, err := o.docs.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			log.Printf("pipeline.Orchestrator.Process: doc_id=%s not found, skipping", docID)
			return
		}
		o.fail(ctx, docID, fmt.Errorf("fetching document: %w", err))
		return
	}
	if doc.Status == domain.StatusFinalized {
		log.Printf("pipeline.Orchestrator.Process: doc_id=%s already finalized, refusing reprocess", docID)
		return
	}

	o.setStatus(ctx, docID, domain.StatusOCRProcessing)

	content, err := o.storage.Download(ctx, doc.S3Bucket, doc.S3Key)
	if err != nil {
		o.fail(ctx, docID, fmt.Errorf("downloading raw document: %w", err))
		return
	}

	extraction, outcome := o.extractor.Extract(ctx, content, doc.ContentType)
	if outcome == domain.StageOutcomeFallback {
		log.Printf("pipeline.Orchestrator.Process: doc_id=%s extraction fell back to neutral result", docID)
	}
	if err := o.extracts.Insert(ctx, docID, extraction, o.model, extractionSchemaVersion); err != nil {
		o.fail(ctx, docID, fmt.Errorf("persisting extraction: %w", err))
		return
	}
	o.setStatus(ctx, docID, domain.StatusOCRComplete)

	// Pause before the next provider call to stay inside rate limits.
	if err := o.settle(ctx); err != nil {
		o.fail(ctx, docID, err)
		return
	}

	var (
		mappingRes *domain.MappingResult
		carbonRes  *domain.CarbonResult
	)
	if !extraction.IsStandardInvoice {
		// Non-standard documents bypass mapping and carbon entirely.
		mappingRes = mapping.NeutralResult()
		carbonRes = carbon.NeutralResult()
	} else {
		mappingRes, err = o.mapper.MapInvoice(ctx, extraction)
		if err != nil {
			o.fail(ctx, docID, err)
			return
		}
		o.setStatus(ctx, docID, domain.StatusMapped)

		carbonRes, err = o.engine.Calculate(ctx, mappingRes, extraction)
		if err != nil {
			o.fail(ctx, docID, err)
			return
		}
	}

	auditRes := o.auditor.Audit(extraction, carbonRes)
	o.setStatus(ctx, docID, domain.StatusAudited)

	final := &domain.FinalResult{
		DocID:       docID,
		Extraction:  *extraction,
		Mapping:     *mappingRes,
		Carbon:      *carbonRes,
		Audit:       *auditRes,
		FinalizedAt: time.Now().UTC(),
	}
	if err := o.results.Insert(ctx, final, mappingRes.RuleVersion, o.factorVersion); err != nil {
		o.fail(ctx, docID, fmt.Errorf("persisting final result: %w", err))
		return
	}
	o.setStatus(ctx, docID, domain.StatusFinalized)

	log.Printf("pipeline.Orchestrator.Process: complete doc_id=%s total=%.4fkg valid=%t",
		docID, carbonRes.TotalKgCO2e, auditRes.IsValid)
}

// ListDocuments returns the most recently uploaded documents.
func (o *Orchestrator) ListDocuments(ctx context.Context, limit int) ([]domain.Document, error) {
	return o.docs.List(ctx, limit)
}

// GetStatus returns the document row for status polling.
func (o *Orchestrator) GetStatus(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	return o.docs.GetByID(ctx, docID)
}

// GetFinalResult returns the finalized result for a document.
// ErrResultPending is returned while processing is in flight and
// ErrProcessingFailed once the document has terminally failed.
func (o *Orchestrator) GetFinalResult(ctx context.Context, docID uuid.UUID) (*domain.FinalResult, error) {
	doc, err := o.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	switch doc.Status {
	case domain.StatusFinalized:
		return o.results.GetByDocID(ctx, docID)
	case domain.StatusFailed:
		return nil, domain.ErrProcessingFailed
	default:
		return nil, domain.ErrResultPending
	}
}

func (o *Orchestrator) settle(ctx context.Context) error {
	if o.settleDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(o.settleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (o *Orchestrator) setStatus(ctx context.Context, docID uuid.UUID, status domain.DocStatus) {
	if err := o.docs.UpdateStatus(ctx, docID, status); err != nil {
		log.Printf("pipeline.Orchestrator: failed to update doc_id=%s to %s: %v", docID, status, err)
	}
}

func (o *Orchestrator) fail(ctx context.Context, docID uuid.UUID, cause error) {
	log.Printf("pipeline.Orchestrator: pipeline failed for doc_id=%s: %v", docID, cause)
	rec := &domain.ErrorRecord{
		ID:         uuid.New(),
		DocID:      docID,
		Stage:      "pipeline",
		Message:    cause.Error(),
		RetryCount: 0,
	}
	if err := o.errs.Insert(ctx, rec); err != nil {
		log.Printf("pipeline.Orchestrator: failed to record error for doc_id=%s: %v", docID, err)
	}
	o.setStatus(ctx, docID, domain.StatusFailed)
}
