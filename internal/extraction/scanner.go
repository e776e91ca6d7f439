package extraction

import "context"

// LineItem is one billed item extracted from an invoice. Freight and
// shipping lines are excluded by the extraction contract and summed into
// the invoice-level TotalFreight instead.
type LineItem struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// InvoiceData contains the structured fields extracted from one invoice
// document. Optional top-level fields are nil when the model omits them.
type InvoiceData struct {
	InvoiceNumber  *string    `json:"invoiceNumber"`
	SupplierNumber *string    `json:"supplierNumber"`
	InvoiceDate    *string    `json:"invoiceDate"` // YYYY-MM-DD
	DueDate        *string    `json:"dueDate"`     // YYYY-MM-DD
	InvoiceTotal   *float64   `json:"invoiceTotal"`
	TotalFreight   *float64   `json:"totalFreight"`
	LineItems      []LineItem `json:"lineItems"`
}

// Scanner defines the interface for invoice extraction operations
type Scanner interface {
	// ScanInvoice analyzes an invoice image/PDF and extracts structured fields
	ScanInvoice(ctx context.Context, fileData []byte, contentType string) (*InvoiceData, error)
	// Close closes the scanner and releases resources
	Close() error
}
