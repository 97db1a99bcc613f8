package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	doc := Document{
		ID:               "doc-1",
		UserID:           "user-1",
		FileName:         "resume.pdf",
		MimeType:         "application/pdf",
		SizeBytes:        2048,
		StorageKey:       "abc/doc.pdf",
		ExtractedTextKey: "abc/doc.pdf.extracted.txt",
		ExtractedAt:      &now,
		CreatedAt:        now,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.UserID,
			doc.FileName,
			doc.MimeType,
			doc.SizeBytes,
			doc.StorageKey,
			doc.ExtractedTextKey,
			sqlmock.AnyArg(), // extracted_at
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, user_id, file_name").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "file_name", "mime_type", "size_bytes",
			"storage_key", "extracted_text_key", "extracted_at", "created_at",
		}))

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUserClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "file_name", "mime_type", "size_bytes",
		"storage_key", "extracted_text_key", "extracted_at", "created_at",
	}).AddRow("doc-1", "user-1", "resume.txt", "text/plain", 100, "k/doc.txt", "", nil, now)

	mock.ExpectQuery("SELECT id, user_id, file_name").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	out, err := repo.ListByUser(context.Background(), "user-1", 0, -3)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one row, got %d", len(out))
	}
	if out[0].ExtractedAt != nil {
		t.Fatal("null extracted_at should stay nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateExtraction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE documents").
		WithArgs("k/doc.txt.extracted.txt", sqlmock.AnyArg(), "user-1", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateExtraction(context.Background(), "user-1", "doc-1", "k/doc.txt.extracted.txt", now); err != nil {
		t.Fatalf("UpdateExtraction: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
