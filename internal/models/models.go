package models

import (
	"time"
)

// User represents an authenticated user of the system.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Document represents one uploaded PDF and the state of its recovery run.
type Document struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	StorageURL  string    `db:"storage_url" json:"storage_url"`   // S3 URL of the uploaded PDF
	ArtifactURL string    `db:"artifact_url" json:"artifact_url"` // S3 URL of the recovered .md artifact
	SourceType  string    `db:"source_type" json:"source_type"`   // "upload" or "url"
	ContentType string    `db:"content_type" json:"content_type"`
	Status      string    `db:"status" json:"status"` // uploaded | processing | ready | failed | unprocessable
	Digest      string    `db:"digest" json:"digest"` // md5 of the final text, for reproducibility checks
	Language    string    `db:"language" json:"language"`
	Encoding    string    `db:"encoding" json:"encoding"` // advisory encoding guess
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
