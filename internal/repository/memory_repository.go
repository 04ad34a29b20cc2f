package repository

import (
	"fmt"
	"sync"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
)

// storedImage holds the preview bytes for one invoice. The bytes live for
// the lifetime of the record and are released on Remove.
type storedImage struct {
	data        []byte
	contentType string
}

// MemoryRepository implements InvoiceRepository with an in-memory ordered
// collection. Nothing is persisted: the collection lives and dies with the
// process, matching the session-only scope of the application.
type MemoryRepository struct {
	mutex  sync.RWMutex
	order  []string
	byID   map[string]*domain.Invoice
	images map[string]storedImage
}

// NewMemoryRepository creates an empty in-memory invoice repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		order:  make([]string, 0),
		byID:   make(map[string]*domain.Invoice),
		images: make(map[string]storedImage),
	}
}

// InsertFront adds a new invoice at the head of the collection
func (r *MemoryRepository) InsertFront(inv *domain.Invoice) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byID[inv.ID]; exists {
		return &RepositoryError{
			Op:  "insert_invoice",
			Err: fmt.Errorf("duplicate invoice id %q", inv.ID),
		}
	}

	r.byID[inv.ID] = inv.Clone()
	r.order = append([]string{inv.ID}, r.order...)
	return nil
}

// Get returns a snapshot of the invoice with the given id
func (r *MemoryRepository) Get(id string) (*domain.Invoice, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	inv, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return inv.Clone(), true
}

// Patch merges partial fields into an existing record. A missing id is a
// silent no-op, not an error.
func (r *MemoryRepository) Patch(id string, patch domain.InvoicePatch) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	inv, ok := r.byID[id]
	if !ok {
		return false
	}
	patch.Apply(inv)
	return true
}

// Replace overwrites the user-editable fields of an existing record
func (r *MemoryRepository) Replace(id string, fields domain.EditableFields) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	inv, ok := r.byID[id]
	if !ok {
		return false
	}

	inv.Date = fields.Date
	inv.Number = fields.Number
	inv.Vendor = fields.Vendor
	inv.TotalAmount = fields.TotalAmount
	inv.Items = make([]domain.InvoiceItem, len(fields.Items))
	copy(inv.Items, fields.Items)
	return true
}

// Remove deletes the record and releases its image bytes
func (r *MemoryRepository) Remove(id string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false
	}

	delete(r.byID, id)
	delete(r.images, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns an ordered snapshot of the collection, newest first
func (r *MemoryRepository) List() []*domain.Invoice {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	invoices := make([]*domain.Invoice, 0, len(r.order))
	for _, id := range r.order {
		if inv, ok := r.byID[id]; ok {
			invoices = append(invoices, inv.Clone())
		}
	}
	return invoices
}

// Len returns the number of records in the collection
func (r *MemoryRepository) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.byID)
}

// SetImage attaches the preview image bytes for an invoice
func (r *MemoryRepository) SetImage(id string, data []byte, contentType string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.byID[id]; !ok {
		return
	}
	r.images[id] = storedImage{data: data, contentType: contentType}
}

// Image returns the preview bytes and content type for an invoice
func (r *MemoryRepository) Image(id string) ([]byte, string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	img, ok := r.images[id]
	if !ok {
		return nil, "", false
	}
	return img.data, img.contentType, true
}
