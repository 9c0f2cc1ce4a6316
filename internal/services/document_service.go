package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opentextlab/restauro/internal/core"
	"github.com/opentextlab/restauro/internal/models"
)

type DocumentService struct {
	db      core.DbClient
	storage core.ObjectClient
	bucket  string
}

func NewDocumentService(db core.DbClient, storage core.ObjectClient, bucket string) *DocumentService {
	return &DocumentService{db: db, storage: storage, bucket: bucket}
}

func (s *DocumentService) UploadAndCreate(ctx context.Context, userID, filename, contentType string, data []byte, sourceType string) (*models.Document, error) {
	docID := uuid.NewString()
	key := s.objectKey(userID, docID, filename)

	url, err := s.storage.UploadFile(ctx, s.bucket, key, data, contentType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &models.Document{
		ID:          docID,
		UserID:      userID,
		FileName:    filename,
		StorageURL:  url,
		SourceType:  sourceType, // "upload" or "url"
		ContentType: contentType,
		Status:      "uploaded",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.db.GetDocumentByID(ctx, id)
}

func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	return s.db.ListDocumentsByUser(ctx, userID)
}

func (s *DocumentService) SetStatus(ctx context.Context, docID string, status string) error {
	return s.db.UpdateDocumentStatus(ctx, docID, status)
}

func (s *DocumentService) objectKey(userID, docID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", userID, docID, filename)
}
