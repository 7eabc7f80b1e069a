package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/storage"
)

const documentFolder = "timetable_pdfs"

// DocumentService uploads reference PDFs to the object store and keeps
// their metadata in the database.
type DocumentService struct {
	store    DocumentStore
	blobs    storage.BlobStore
	maxBytes int64
	maxPages int
	inspect  func(body []byte, maxPages int) (int, error)
	log      zerolog.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(store DocumentStore, blobs storage.BlobStore, maxBytes int64, maxPages int, log zerolog.Logger) *DocumentService {
	return &DocumentService{
		store:    store,
		blobs:    blobs,
		maxBytes: maxBytes,
		maxPages: maxPages,
		inspect:  storage.InspectPDF,
		log:      log.With().Str("component", "document_service").Logger(),
	}
}

// Upload validates the file, stores it remotely and records its metadata.
// If the metadata insert fails the remote object is deleted again.
func (s *DocumentService) Upload(ctx context.Context, scope *model.Scope, up *model.DocumentUpload) (*model.Document, error) {
	deptID, err := scope.Department()
	if err != nil {
		return nil, err
	}
	if scope.Identity.DepartmentCode == nil {
		return nil, model.ErrNoDepartmentAssigned
	}

	if err := storage.CheckExtension(up.Filename); err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && int64(len(up.Body)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", model.ErrFileTooLarge, len(up.Body), s.maxBytes)
	}
	pages, err := s.inspect(up.Body, s.maxPages)
	if err != nil {
		return nil, err
	}

	folder := documentFolder + "/" + *scope.Identity.DepartmentCode
	obj, err := s.blobs.Store(ctx, up.Body, up.Filename, folder)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		DepartmentID: deptID,
		ObjectKey:    obj.Key,
		URL:          obj.URL,
		Filename:     up.Filename,
		SizeBytes:    obj.Size,
		PageCount:    pages,
		Note:         up.Note,
	}
	if err := s.store.Create(ctx, doc); err != nil {
		if !s.blobs.Delete(context.WithoutCancel(ctx), obj.Key) {
			s.log.Error().Str("key", obj.Key).Msg("Orphaned object after failed metadata insert")
		}
		return nil, fmt.Errorf("save document metadata: %w", err)
	}

	s.log.Info().
		Str("document_id", doc.ID.String()).
		Str("key", obj.Key).
		Int64("bytes", obj.Size).
		Int("pages", pages).
		Msg("Document uploaded")
	return doc, nil
}

// List returns the department's documents, newest first.
func (s *DocumentService) List(ctx context.Context, scope *model.Scope) ([]model.Document, error) {
	if !scope.HasDepartment() {
		return []model.Document{}, nil
	}
	return s.store.List(ctx, *scope.DepartmentID)
}

// Download returns a document's metadata and bytes.
func (s *DocumentService) Download(ctx context.Context, scope *model.Scope, id uuid.UUID) (*model.Document, []byte, error) {
	if !scope.HasDepartment() {
		return nil, nil, model.ErrNotFound
	}
	doc, err := s.store.GetByID(ctx, *scope.DepartmentID, id)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.blobs.Fetch(ctx, doc.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, body, nil
}

// Delete removes the metadata row, then the remote object. A failed remote
// delete is logged and leaves an orphaned object.
func (s *DocumentService) Delete(ctx context.Context, scope *model.Scope, id uuid.UUID) error {
	deptID, err := scope.Department()
	if err != nil {
		return err
	}
	key, err := s.store.Delete(ctx, deptID, id)
	if err != nil {
		return err
	}
	if !s.blobs.Delete(context.WithoutCancel(ctx), key) {
		s.log.Warn().Str("key", key).Str("document_id", id.String()).Msg("Remote object not deleted")
	}
	return nil
}
