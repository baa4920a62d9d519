package domain

import "errors"

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrResultPending       = errors.New("result not yet available")
	ErrProcessingFailed    = errors.New("document processing failed")
	ErrFactorNotFound      = errors.New("emission factor not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrAlreadyFinalized    = errors.New("document already finalized")
)
