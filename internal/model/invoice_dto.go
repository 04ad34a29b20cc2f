package model

import (
	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
)

// InvoiceItemDTO represents a single invoice line item for data transfer
type InvoiceItemDTO struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// InvoiceDTO represents an invoice record for data transfer
type InvoiceDTO struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Number      string           `json:"number"`
	Vendor      string           `json:"vendor"`
	TotalAmount float64          `json:"totalAmount"`
	Items       []InvoiceItemDTO `json:"items"`
	Status      string           `json:"status"`
	ImageURL    string           `json:"imageUrl,omitempty"`
}

// FileUpload carries one uploaded file through the orchestrator
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UpdateInvoiceRequest is the payload for a manual edit. It replaces all
// user-editable fields atomically; id and status are never part of an edit.
type UpdateInvoiceRequest struct {
	Date        string           `json:"date"`
	Number      string           `json:"number"`
	Vendor      string           `json:"vendor"`
	TotalAmount float64          `json:"totalAmount"`
	Items       []InvoiceItemDTO `json:"items"`
}

// UploadResponse is returned immediately after an upload request: the
// placeholder records, before any extraction has resolved.
type UploadResponse struct {
	Success   bool         `json:"success"`
	Uploading bool         `json:"uploading"`
	Invoices  []InvoiceDTO `json:"invoices"`
}

// InvoiceListResponse is the full ordered collection plus the upload flag
type InvoiceListResponse struct {
	Count     int          `json:"count"`
	Uploading bool         `json:"uploading"`
	Invoices  []InvoiceDTO `json:"invoices"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FromDomain converts a domain Invoice to an InvoiceDTO
func (dto *InvoiceDTO) FromDomain(inv *domain.Invoice) {
	dto.ID = inv.ID
	dto.Date = inv.Date
	dto.Number = inv.Number
	dto.Vendor = inv.Vendor
	dto.TotalAmount = inv.TotalAmount
	dto.Status = string(inv.Status)
	dto.ImageURL = inv.ImageURL

	dto.Items = make([]InvoiceItemDTO, len(inv.Items))
	for i, item := range inv.Items {
		dto.Items[i] = InvoiceItemDTO{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
}

// ToEditableFields converts an edit request to the domain representation
func (r *UpdateInvoiceRequest) ToEditableFields() domain.EditableFields {
	items := make([]domain.InvoiceItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.InvoiceItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	return domain.EditableFields{
		Date:        r.Date,
		Number:      r.Number,
		Vendor:      r.Vendor,
		TotalAmount: r.TotalAmount,
		Items:       items,
	}
}

// InvoiceDTOs converts a slice of domain invoices preserving order
func InvoiceDTOs(invoices []*domain.Invoice) []InvoiceDTO {
	dtos := make([]InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		dtos[i].FromDomain(inv)
	}
	return dtos
}
