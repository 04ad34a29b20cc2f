package service

import (
	"context"
	"fmt"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
	"github.com/smartinvoice/invoice-assistant-service/internal/model"
)

// InvoiceServicer defines the operations the presentation surface depends on
type InvoiceServicer interface {
	// HandleFiles accepts a batch of uploaded files. It inserts one
	// placeholder record per file (newest first) and returns them
	// immediately; extraction continues in the background, strictly one
	// file at a time. Progress is observed through the collection.
	HandleFiles(ctx context.Context, uploads []model.FileUpload) []model.InvoiceDTO

	// ListInvoices returns the ordered collection, newest first
	ListInvoices() []model.InvoiceDTO

	// UpdateInvoice replaces the user-editable fields of an invoice.
	// ID and status are left unchanged. Returns false when the id is absent.
	UpdateInvoice(id string, req *model.UpdateInvoiceRequest) (*model.InvoiceDTO, bool)

	// DeleteInvoice removes an invoice. An extraction still in flight for
	// that id resolves into a silent no-op.
	DeleteInvoice(id string) bool

	// InvoiceImage returns the preview bytes for an invoice
	InvoiceImage(id string) ([]byte, string, bool)

	// Uploading reports whether any upload batch is still being processed
	Uploading() bool

	// Shutdown gracefully shuts down the service
	Shutdown()
}

// InvoiceExtractor is the remote extraction contract: image bytes and a
// declared MIME type in, structured fields or an error out.
type InvoiceExtractor interface {
	ExtractInvoice(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractedFields, error)
}

// ProcessingError represents an error that occurred during invoice processing
type ProcessingError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *ProcessingError) Unwrap() error {
	return e.Err
}
