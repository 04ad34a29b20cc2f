package domain

// Status represents the processing state of an invoice record.
type Status string

const (
	// StatusProcessing is the initial state of every uploaded invoice.
	StatusProcessing Status = "processing"

	// StatusCompleted means extraction succeeded and the fields are trustworthy.
	StatusCompleted Status = "completed"

	// StatusError means extraction failed; fields keep their sentinel values
	// until edited by hand.
	StatusError Status = "error"
)

// ProcessingSentinel is shown in text fields while extraction is in flight.
const ProcessingSentinel = "辨識中..."

// InvoiceItem represents a single line item on an invoice.
type InvoiceItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// Invoice is the core entity: one uploaded invoice image and the fields
// extracted from it. The ID is generated locally and never changes.
type Invoice struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Number      string        `json:"number"`
	Vendor      string        `json:"vendor"`
	TotalAmount float64       `json:"totalAmount"`
	Items       []InvoiceItem `json:"items"`
	Status      Status        `json:"status"`
	ImageURL    string        `json:"imageUrl,omitempty"`
}

// NewPlaceholder creates the invoice record inserted the moment a file is
// accepted, before extraction resolves.
func NewPlaceholder(id, imageURL string) *Invoice {
	return &Invoice{
		ID:          id,
		Date:        ProcessingSentinel,
		Number:      ProcessingSentinel,
		Vendor:      ProcessingSentinel,
		TotalAmount: 0,
		Items:       make([]InvoiceItem, 0),
		Status:      StatusProcessing,
		ImageURL:    imageURL,
	}
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the stored record to mutation.
func (i *Invoice) Clone() *Invoice {
	out := *i
	out.Items = make([]InvoiceItem, len(i.Items))
	copy(out.Items, i.Items)
	return &out
}

// ExtractedFields is what the remote model returns for one invoice image.
// Everything except the field names is free-form: the date is requested in
// YYYY/MM/DD but never validated locally.
type ExtractedFields struct {
	Date        string        `json:"date"`
	Number      string        `json:"number"`
	Vendor      string        `json:"vendor"`
	TotalAmount float64       `json:"totalAmount"`
	Items       []InvoiceItem `json:"items,omitempty"`
}

// InvoicePatch is a partial update merged into an existing record. Nil
// pointers leave the corresponding field untouched.
type InvoicePatch struct {
	Date        *string
	Number      *string
	Vendor      *string
	TotalAmount *float64
	Items       []InvoiceItem
	Status      *Status
}

// CompletedPatch builds the patch applied when extraction succeeds.
func CompletedPatch(fields *ExtractedFields) InvoicePatch {
	status := StatusCompleted
	items := fields.Items
	if items == nil {
		items = make([]InvoiceItem, 0)
	}
	return InvoicePatch{
		Date:        &fields.Date,
		Number:      &fields.Number,
		Vendor:      &fields.Vendor,
		TotalAmount: &fields.TotalAmount,
		Items:       items,
		Status:      &status,
	}
}

// ErrorPatch builds the patch applied when extraction fails. Only the status
// changes; sentinel fields stay so the row remains editable by hand.
func ErrorPatch() InvoicePatch {
	status := StatusError
	return InvoicePatch{Status: &status}
}

// EditableFields is the set of fields a manual edit replaces atomically.
// ID and status are deliberately absent: edits never touch them.
type EditableFields struct {
	Date        string
	Number      string
	Vendor      string
	TotalAmount float64
	Items       []InvoiceItem
}

// Apply merges the patch into the invoice.
func (p InvoicePatch) Apply(inv *Invoice) {
	if p.Date != nil {
		inv.Date = *p.Date
	}
	if p.Number != nil {
		inv.Number = *p.Number
	}
	if p.Vendor != nil {
		inv.Vendor = *p.Vendor
	}
	if p.TotalAmount != nil {
		inv.TotalAmount = *p.TotalAmount
	}
	if p.Items != nil {
		inv.Items = p.Items
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
}
