package core

import (
	"context"
	"io"

	"github.com/opentextlab/restauro/internal/models"
)

// DbClient defines all persistence operations the services need.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) (err error)
	GetUserByEmail(ctx context.Context, email string) (user *models.User, err error)

	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	ListDocumentsByUser(ctx context.Context, userID string) ([]models.Document, error)
	UpdateDocumentStatus(ctx context.Context, id string, status string) error

	// UpdateDocumentResult records the outcome of a recovery run: the
	// artifact location, the content digest and the advisory
	// language/encoding metadata.
	UpdateDocumentResult(ctx context.Context, id, status, artifactURL, digest, language, encoding string) error

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
// It's abstract so AWS can be swapped for MinIO, GCP, etc. easily.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)

	GetObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}
