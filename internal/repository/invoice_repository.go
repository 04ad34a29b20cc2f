package repository

import (
	"fmt"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
)

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// InvoiceRepository defines the ordered in-memory invoice collection.
//
// Iteration order is most-recently-inserted first. Patch tolerates a missing
// id as a silent no-op: that is the defined outcome of the race between a
// user deleting a record and its in-flight extraction resolving late.
type InvoiceRepository interface {
	// InsertFront adds a new invoice at the head of the collection. The id
	// must be unique; callers guarantee this by generating random tokens.
	InsertFront(inv *domain.Invoice) error

	// Get returns a snapshot of the invoice with the given id
	Get(id string) (*domain.Invoice, bool)

	// Patch merges partial fields into an existing record. Returns false
	// without modifying anything when the id is absent.
	Patch(id string, patch domain.InvoicePatch) bool

	// Replace overwrites all user-editable fields of an existing record,
	// leaving id, status and image reference unchanged.
	Replace(id string, fields domain.EditableFields) bool

	// Remove deletes the record and its image bytes if present
	Remove(id string) bool

	// List returns an ordered snapshot of the collection, head first
	List() []*domain.Invoice

	// Len returns the number of records
	Len() int

	// SetImage attaches the preview image bytes for an invoice
	SetImage(id string, data []byte, contentType string)

	// Image returns the preview bytes and content type for an invoice
	Image(id string) ([]byte, string, bool)
}
