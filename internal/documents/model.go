package documents

import "time"

// Document represents an uploaded resume file owned by a user. ExtractedTextKey
// points at the plain-text rendition stored next to the original.
type Document struct {
	ID               string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
}
