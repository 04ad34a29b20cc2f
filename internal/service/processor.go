package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
	"github.com/smartinvoice/invoice-assistant-service/internal/model"
	"github.com/smartinvoice/invoice-assistant-service/internal/repository"
)

// IDGenerator generates unique invoice ids
type IDGenerator interface {
	Generate() string
}

// uuidGenerator generates random v4 tokens. Collisions are treated as a
// latent bug, not handled defensively; v4 uniqueness makes the odds
// negligible for a session-sized collection.
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// ProcessorService implements InvoiceServicer. It owns the collection and
// runs extraction strictly sequentially: one file fully resolves before the
// next begins, bounding outbound requests to the model at one in flight.
type ProcessorService struct {
	extractor InvoiceExtractor
	repo      repository.InvoiceRepository
	idGen     IDGenerator

	// procMu serialises extraction across overlapping upload batches
	procMu sync.Mutex

	// activeBatches drives the uploading flag
	activeBatches atomic.Int32

	// wg tracks in-flight batches for shutdown
	wg sync.WaitGroup
}

// NewProcessorService creates an invoice processor backed by the given
// extractor and repository
func NewProcessorService(extractor InvoiceExtractor, repo repository.InvoiceRepository) *ProcessorService {
	return &ProcessorService{
		extractor: extractor,
		repo:      repo,
		idGen:     &uuidGenerator{},
	}
}

// NewProcessorServiceWithDeps creates a processor with a custom id generator
// for testing
func NewProcessorServiceWithDeps(extractor InvoiceExtractor, repo repository.InvoiceRepository, idGen IDGenerator) *ProcessorService {
	return &ProcessorService{
		extractor: extractor,
		repo:      repo,
		idGen:     idGen,
	}
}

// imageRoute is where the preview bytes for an invoice are served from
func imageRoute(id string) string {
	return fmt.Sprintf("/v1/invoices/%s/image", id)
}

// HandleFiles inserts one placeholder per file and kicks off background
// extraction for the batch. An empty batch is a no-op.
func (s *ProcessorService) HandleFiles(ctx context.Context, uploads []model.FileUpload) []model.InvoiceDTO {
	if len(uploads) == 0 {
		return []model.InvoiceDTO{}
	}

	s.activeBatches.Add(1)

	// Placeholders go in synchronously and in presented order, so the
	// caller sees exactly N processing records, newest first.
	type queued struct {
		id     string
		upload model.FileUpload
	}
	batch := make([]queued, 0, len(uploads))
	dtos := make([]model.InvoiceDTO, 0, len(uploads))

	for _, upload := range uploads {
		id := s.idGen.Generate()
		placeholder := domain.NewPlaceholder(id, imageRoute(id))
		if err := s.repo.InsertFront(placeholder); err != nil {
			log.Printf("Failed to insert placeholder for %s: %v", upload.Filename, err)
			continue
		}
		s.repo.SetImage(id, upload.Data, upload.ContentType)

		var dto model.InvoiceDTO
		dto.FromDomain(placeholder)
		dtos = append(dtos, dto)
		batch = append(batch, queued{id: id, upload: upload})
	}

	// Extraction outlives the upload request, so detach from its
	// cancellation; there is no cancel path other than deleting records.
	bgCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.activeBatches.Add(-1)

		for _, q := range batch {
			s.processOne(bgCtx, q.id, q.upload)
		}
	}()

	return dtos
}

// processOne runs a single extraction and reconciles the result into the
// collection. A failure marks only this record; it never aborts the batch.
// If the record was deleted while the call was in flight, the patch is a
// silent no-op and the result is dropped.
func (s *ProcessorService) processOne(ctx context.Context, id string, upload model.FileUpload) {
	s.procMu.Lock()
	defer s.procMu.Unlock()

	fields, err := s.extractor.ExtractInvoice(ctx, upload.Data, upload.ContentType)
	if err != nil {
		perr := &ProcessingError{Op: "extract_invoice", Err: err}
		log.Printf("Extraction failed for %s: %v", upload.Filename, perr)
		s.repo.Patch(id, domain.ErrorPatch())
		return
	}

	s.repo.Patch(id, domain.CompletedPatch(fields))
}

// ListInvoices returns the ordered collection, newest first
func (s *ProcessorService) ListInvoices() []model.InvoiceDTO {
	return model.InvoiceDTOs(s.repo.List())
}

// UpdateInvoice replaces the user-editable fields of an invoice
func (s *ProcessorService) UpdateInvoice(id string, req *model.UpdateInvoiceRequest) (*model.InvoiceDTO, bool) {
	if !s.repo.Replace(id, req.ToEditableFields()) {
		return nil, false
	}

	inv, ok := s.repo.Get(id)
	if !ok {
		return nil, false
	}

	var dto model.InvoiceDTO
	dto.FromDomain(inv)
	return &dto, true
}

// DeleteInvoice removes an invoice from the collection
func (s *ProcessorService) DeleteInvoice(id string) bool {
	return s.repo.Remove(id)
}

// InvoiceImage returns the preview bytes for an invoice
func (s *ProcessorService) InvoiceImage(id string) ([]byte, string, bool) {
	return s.repo.Image(id)
}

// Uploading reports whether any upload batch is still being processed
func (s *ProcessorService) Uploading() bool {
	return s.activeBatches.Load() > 0
}

// Shutdown waits for in-flight batches to finish
func (s *ProcessorService) Shutdown() {
	s.wg.Wait()
}
