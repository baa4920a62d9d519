package domain

// DocStatus tracks a document through the processing pipeline.
// Transitions are strictly forward; "failed" is reachable from any
// non-terminal state.
type DocStatus string

const (
	StatusUploaded      DocStatus = "uploaded"
	StatusOCRProcessing DocStatus = "ocr_processing"
	StatusOCRComplete   DocStatus = "ocr_complete"
	StatusMapped        DocStatus = "mapped"
	StatusAudited       DocStatus = "audited"
	StatusFinalized     DocStatus = "finalized"
	StatusFailed        DocStatus = "failed"
)

// Terminal reports whether no further transitions are allowed from s.
func (s DocStatus) Terminal() bool {
	return s == StatusFinalized || s == StatusFailed
}

// StageOutcome distinguishes a stage result produced normally from one
// synthesized by the fail-soft fallback path.
type StageOutcome string

const (
	StageOutcomeOK       StageOutcome = "ok"
	StageOutcomeFallback StageOutcome = "fallback"
)

// AllowedContentTypes maps the MIME types accepted for upload to a short
// label used in file keys.
var AllowedContentTypes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"text/plain":      "txt",
}
