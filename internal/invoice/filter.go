package invoice

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FilterInvoices returns the sub-list of invoices matching both the
// free-text query and the invoice-date range, preserving order. Either
// predicate is skipped when its inputs are empty or unparseable: a record
// with no parseable invoice date is judged on text alone, and a range
// boundary that is absent or invalid is simply not enforced. The end
// boundary is inclusive through the end of that day.
func FilterInvoices(invoices []Invoice, query string, startDate string, endDate string) []Invoice {
	start, hasStart := parseDate(startDate)
	end, hasEnd := parseDate(endDate)
	if hasEnd {
		end = end.Add(24*time.Hour - time.Millisecond)
	}

	filtered := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !matchesQuery(inv, query) {
			continue
		}

		if hasStart || hasEnd {
			if date, ok := invoiceDate(inv); ok {
				if hasStart && date.Before(start) {
					continue
				}
				if hasEnd && date.After(end) {
					continue
				}
			}
		}

		filtered = append(filtered, inv)
	}
	return filtered
}

// matchesQuery reports whether any of the invoice's searchable fields
// contains the query as a case-insensitive substring. An empty query
// matches everything.
func matchesQuery(inv Invoice, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)

	fields := []string{
		strValue(inv.InvoiceNumber),
		strValue(inv.SupplierNumber),
		strValue(inv.InvoiceDate),
		strValue(inv.DueDate),
		numValue(inv.InvoiceTotal),
		numValue(inv.TotalFreight),
	}
	for _, item := range inv.LineItems {
		fields = append(fields, item.Description, item.Category)
	}

	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// invoiceDate parses the record's invoice date, reporting whether it is
// usable for range filtering.
func invoiceDate(inv Invoice) (time.Time, bool) {
	if inv.InvoiceDate == nil {
		return time.Time{}, false
	}
	return parseDate(*inv.InvoiceDate)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// numValue renders an optional number the way it appears in search and
// export output: shortest exact decimal form, empty when absent.
func numValue(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
