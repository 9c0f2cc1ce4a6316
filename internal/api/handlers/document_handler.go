package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	middleware "github.com/opentextlab/restauro/internal/api/middlewares"
	"github.com/opentextlab/restauro/internal/config"
	"github.com/opentextlab/restauro/internal/core"
	"github.com/opentextlab/restauro/internal/models"
	"github.com/opentextlab/restauro/internal/queue"
	"github.com/opentextlab/restauro/internal/services"
)

type DocumentHandler struct {
	docs   *services.DocumentService
	obj    core.ObjectClient
	queue  queue.Queue
	cfg    *config.Config
}

func NewDocumentHandler(docs *services.DocumentService, obj core.ObjectClient, q queue.Queue, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{docs: docs, obj: obj, queue: q, cfg: cfg}
}

// UploadDocument handles file upload, DB insert, and background processing.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {

	r.ParseMultipartForm(52 << 20)

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read file", http.StatusBadRequest)
		return
	}

	// Sanitize filename to prevent path traversal or invalid characters
	cleanFilename := filepath.Base(header.Filename)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploadctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	doc, err := h.docs.UploadAndCreate(uploadctx, userID, cleanFilename, contentType, data, "upload")
	if err != nil {
		log.Printf("upload failed for %s: %v", cleanFilename, err)
		http.Error(w, fmt.Sprintf("upload failed: %v", err), http.StatusInternalServerError)
		return
	}

	h.queue.Enqueue(doc.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	documents, err := h.docs.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documents)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.ownedDocument(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// GetDocumentText streams the recovered markdown artifact back to the caller.
func (h *DocumentHandler) GetDocumentText(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.ownedDocument(w, r)
	if !ok {
		return
	}
	if doc.Status != "ready" || doc.ArtifactURL == "" {
		http.Error(w, fmt.Sprintf("document not ready (status: %s)", doc.Status), http.StatusConflict)
		return
	}

	bucket, key := core.ParseObjectURL(doc.ArtifactURL)
	rc, err := h.obj.GetObjectReader(r.Context(), bucket, key)
	if err != nil {
		http.Error(w, "artifact unavailable", http.StatusBadGateway)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("X-Content-Digest", doc.Digest)
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("stream artifact for %s: %v", doc.ID, err)
	}
}

func (h *DocumentHandler) ownedDocument(w http.ResponseWriter, r *http.Request) (*models.Document, bool) {
	userID, idOK := r.Context().Value(middleware.UserIDKey).(string)
	if !idOK {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return nil, false
	}

	d, err := h.docs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if d == nil || d.UserID != userID {
		http.Error(w, "document not found", http.StatusNotFound)
		return nil, false
	}
	return d, true
}
