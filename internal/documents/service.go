package documents

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-insight/internal/extract"
	"resume-insight/internal/shared/storage/object"
	"resume-insight/internal/shared/telemetry"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// NewService constructs a Service.
func NewService(store object.ObjectStore, repo DocumentsRepo) *Service {
	return &Service{Store: store, Repo: repo}
}

// Upload saves the file to object storage, extracts its text and records the
// document. Files the extractor cannot read are rejected.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, fmt.Errorf("file name is required: %w", ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return Document{}, fmt.Errorf("unsupported file type %q, use pdf, docx or txt: %w", ext, ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Document{}, fmt.Errorf("save file: %w", err)
	}

	extractedKey, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName)
	if err != nil {
		telemetry.Error("documents.extract_failed", map[string]any{
			"user_id":   userID,
			"file_name": fileName,
			"error":     err.Error(),
		})
		return Document{}, fmt.Errorf("could not read text from %s: %w", fileName, ErrInvalidInput)
	}

	now := time.Now().UTC()
	doc := Document{
		ID:               uuid.NewString(),
		UserID:           userID,
		FileName:         fileName,
		MimeType:         mimeType,
		SizeBytes:        size,
		StorageKey:       storageKey,
		ExtractedTextKey: extractedKey,
		ExtractedAt:      &now,
		CreatedAt:        now,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// Current returns the most recently uploaded document for a user.
func (s *Service) Current(ctx context.Context, userID string) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// Get returns a document by ID for a user.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, fmt.Errorf("user id and document id are required: %w", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns documents for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// ExtractedText returns the plain text of a document. Documents recorded
// before extraction ran get extracted on first use.
func (s *Service) ExtractedText(ctx context.Context, userID, documentID string) (string, error) {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return "", err
	}

	key := doc.ExtractedTextKey
	if key == "" {
		key, err = extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
		if err != nil {
			return "", fmt.Errorf("extract text: %w", err)
		}
		if err := s.Repo.UpdateExtraction(ctx, userID, documentID, key, time.Now().UTC()); err != nil {
			return "", err
		}
	}

	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("open extracted text: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	return string(data), nil
}
