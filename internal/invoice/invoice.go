package invoice

// LineItem is one billed item on an invoice. Items have no identity beyond
// their position; order is the extraction order.
type LineItem struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// Invoice represents one extracted invoice document. Optional fields are nil
// when the extractor omitted them. Records are immutable once appended to
// the store.
type Invoice struct {
	InvoiceNumber   *string    `json:"invoiceNumber,omitempty"`
	SupplierNumber  *string    `json:"supplierNumber,omitempty"`
	InvoiceDate     *string    `json:"invoiceDate,omitempty"` // YYYY-MM-DD
	DueDate         *string    `json:"dueDate,omitempty"`     // YYYY-MM-DD
	InvoiceTotal    *float64   `json:"invoiceTotal,omitempty"`
	TotalFreight    *float64   `json:"totalFreight,omitempty"` // treated as 0 when nil
	LineItems       []LineItem `json:"lineItems"`
	FileName        string     `json:"fileName"`
	ValidationError string     `json:"validationError,omitempty"`
	FileDataURL     string     `json:"fileDataUrl,omitempty"` // preview payload, never persisted
}

// withoutPreview returns a copy of the invoice with the preview payload
// dropped, suitable for persistence.
func (inv Invoice) withoutPreview() Invoice {
	inv.FileDataURL = ""
	return inv
}
