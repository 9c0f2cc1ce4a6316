package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/opentextlab/restauro/internal/core"
	"github.com/opentextlab/restauro/internal/recovery"
)

// Queue schedules background recovery runs for uploaded documents.
type Queue interface {
	Start(ctx context.Context, numWorkers int)
	Enqueue(docID string)
	ProcessOne(ctx context.Context, docID string) error
}

// ProcessQueue pulls document IDs off a bounded in-memory channel and runs
// the recovery pipeline for each. Every job gets a fresh Processor so no
// correction map or error-pattern state ever leaks between documents.
type ProcessQueue struct {
	db           core.DbClient
	obj          core.ObjectClient
	bucket       string
	newProcessor func() *recovery.Processor
	jobs         chan string
}

// NewProcessQueue constructs the queue with a bounded job channel (64).
func NewProcessQueue(db core.DbClient, obj core.ObjectClient, bucket string, newProcessor func() *recovery.Processor) *ProcessQueue {
	return &ProcessQueue{
		db: db, obj: obj, bucket: bucket, newProcessor: newProcessor,
		jobs: make(chan string, 64),
	}
}

// Start runs numWorkers goroutines reading from the jobs channel. Documents
// are independent, so workers share nothing but the channel.
func (q *ProcessQueue) Start(ctx context.Context, numWorkers int) {
	for w := 1; w <= numWorkers; w++ {
		go func(w int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("ProcessQueue: worker %d shutting down", w)
					return
				case docID := <-q.jobs:
					log.Printf("ProcessQueue: worker %d processing document %s", w, docID)
					if err := q.ProcessOne(ctx, docID); err != nil {
						log.Printf("ProcessQueue: document %s failed: %v", docID, err)
					}
				}
			}
		}(w)
	}
}

// Enqueue schedules a document ID for processing.
// If the queue is full, this call will block until space frees up.
func (q *ProcessQueue) Enqueue(docID string) {
	q.jobs <- docID
}

// ProcessOne fetches the PDF from object storage, runs the recovery pipeline
// on a fresh processor, uploads the markdown artifact and records the digest.
func (q *ProcessQueue) ProcessOne(ctx context.Context, docID string) error {
	// Fresh context with a longer deadline than the request that enqueued us.
	proctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	doc, err := q.db.GetDocumentByID(proctx, docID)
	if err != nil || doc == nil {
		return fmt.Errorf("document not found: %w", err)
	}

	_ = q.db.UpdateDocumentStatus(proctx, docID, "processing")

	bucket, key := core.ParseObjectURL(doc.StorageURL)
	data, err := q.obj.GetFile(proctx, bucket, key)
	if err != nil {
		_ = q.db.UpdateDocumentStatus(proctx, docID, "failed")
		return fmt.Errorf("get object: %w", err)
	}

	proc := q.newProcessor()
	report, err := proc.Process(proctx, data)
	if err != nil {
		status := "failed"
		if errors.Is(err, recovery.ErrNoUsableExtraction) {
			status = "unprocessable"
		}
		_ = q.db.UpdateDocumentStatus(proctx, docID, status)
		return err
	}

	artifactKey := key + ".md"
	artifactURL, err := q.obj.UploadFile(proctx, q.bucket, artifactKey, []byte(report.Text), "text/markdown")
	if err != nil {
		_ = q.db.UpdateDocumentStatus(proctx, docID, "failed")
		return fmt.Errorf("upload artifact: %w", err)
	}

	return q.db.UpdateDocumentResult(proctx, docID, "ready", artifactURL, report.Digest, report.Language, report.Encoding)
}
