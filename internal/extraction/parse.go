package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseInvoiceJSON parses the JSON response from the model and enforces the
// extraction contract: invoiceNumber, invoiceDate, invoiceTotal, and
// lineItems are mandatory; everything else may be omitted. A parse failure
// or a missing mandatory field rejects the whole document.
func parseInvoiceJSON(text string) (*InvoiceData, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var data InvoiceData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	if data.InvoiceNumber == nil {
		return nil, fmt.Errorf("response missing mandatory field invoiceNumber")
	}
	if data.InvoiceDate == nil {
		return nil, fmt.Errorf("response missing mandatory field invoiceDate")
	}
	if data.InvoiceTotal == nil {
		return nil, fmt.Errorf("response missing mandatory field invoiceTotal")
	}
	if data.LineItems == nil {
		return nil, fmt.Errorf("response missing mandatory field lineItems")
	}

	return &data, nil
}
