// Package ingest accepts raw document uploads, stores the bytes in
// object storage and enqueues the document for processing by inserting
// its row in "uploaded" state.
package ingest

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/Rahul-1611/AEROCARBON/internal/config"
	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

// Service validates and persists incoming documents.
type Service struct {
	docs        port.DocumentRepository
	storage     port.ObjectStorage
	bucket      string
	maxFileSize int64
}

func NewService(docs port.DocumentRepository, storage port.ObjectStorage, cfg *config.S3Config) *Service {
	return &Service{
		docs:        docs,
		storage:     storage,
		bucket:      cfg.Bucket,
		maxFileSize: cfg.MaxFileSizeMB * 1024 * 1024,
	}
}

// UploadInput carries an incoming multipart file.
type UploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// Upload validates the file, writes the bytes to object storage and
// inserts the document row. The queue worker picks it up from there.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*domain.Document, error) {
	contentType := input.Header.Header.Get("Content-Type")
	label, ok := domain.AllowedContentTypes[contentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Header.Size > s.maxFileSize {
		return nil, domain.ErrFileTooLarge
	}

	docID := uuid.New()
	key := objectKey(docID, label)

	err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("ingest.Service.Upload: storage upload failed for %s: %v", docID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	doc := &domain.Document{
		ID:          docID,
		FileName:    input.Header.Filename,
		ContentType: contentType,
		FileSize:    input.Header.Size,
		S3Bucket:    s.bucket,
		S3Key:       key,
		Status:      domain.StatusUploaded,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		// Orphaned object; best effort cleanup.
		if delErr := s.storage.Delete(ctx, s.bucket, key); delErr != nil {
			log.Printf("ingest.Service.Upload: cleanup of %s failed: %v", key, delErr)
		}
		return nil, err
	}

	log.Printf("ingest.Service.Upload: accepted %s (%s, %d bytes) as doc_id=%s",
		doc.FileName, contentType, doc.FileSize, docID)
	return doc, nil
}

// objectKey shards uploads by date so bucket listings stay navigable.
func objectKey(docID uuid.UUID, label string) string {
	return path.Join("raw", time.Now().UTC().Format("2006/01/02"), docID.String()+"."+label)
}
