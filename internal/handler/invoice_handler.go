package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Rahul-1611/AEROCARBON/internal/ingest"
	"github.com/Rahul-1611/AEROCARBON/internal/pipeline"
)

// InvoiceHandler handles invoice upload, status and result endpoints.
type InvoiceHandler struct {
	ingest       *ingest.Service
	orchestrator *pipeline.Orchestrator
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(ingest *ingest.Service, orchestrator *pipeline.Orchestrator) *InvoiceHandler {
	return &InvoiceHandler{ingest: ingest, orchestrator: orchestrator}
}

// Upload handles POST /api/v1/invoices/upload.
// The response returns immediately with the document in "uploaded" state;
// the queue worker processes it asynchronously.
func (h *InvoiceHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.ingest.Upload(c.Request.Context(), ingest.UploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// GetStatus handles GET /api/v1/invoices/:id/status.
func (h *InvoiceHandler) GetStatus(c *gin.Context) {
	docID, ok := parseDocID(c)
	if !ok {
		return
	}

	doc, err := h.orchestrator.GetStatus(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"doc_id":     doc.ID,
		"status":     doc.Status,
		"updated_at": doc.UpdatedAt,
	})
}

// GetResult handles GET /api/v1/invoices/:id.
// Finalized documents return the full result; in-flight documents return
// 202 and failed documents 422.
func (h *InvoiceHandler) GetResult(c *gin.Context) {
	docID, ok := parseDocID(c)
	if !ok {
		return
	}

	result, err := h.orchestrator.GetFinalResult(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// List handles GET /api/v1/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	docs, err := h.orchestrator.ListDocuments(c.Request.Context(), 50)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docs)
}

func parseDocID(c *gin.Context) (uuid.UUID, bool) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_DOC_ID", "document id must be a valid UUID")
		return uuid.Nil, false
	}
	return docID, true
}
