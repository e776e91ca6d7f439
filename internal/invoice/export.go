package invoice

import (
	"strconv"
	"strings"
)

// exportHeaders is the fixed column layout for spreadsheet export. One row
// is emitted per line item; invoices without line items still get one row
// with the line columns empty.
var exportHeaders = []string{
	"FileName", "InvoiceNumber", "SupplierNumber", "InvoiceDate", "DueDate",
	"InvoiceTotal", "TotalFreight",
	"LineDescription", "LineCategory", "LineQuantity", "LineUnitPrice", "LineTotal",
}

// ExportTSV flattens the invoices into a tab-separated text block suitable
// for pasting into a spreadsheet. Rows follow (invoice order, line item
// order).
func ExportTSV(invoices []Invoice) string {
	rows := make([]string, 0, len(invoices)+1)
	rows = append(rows, strings.Join(exportHeaders, "\t"))

	for _, inv := range invoices {
		prefix := []string{
			escapeField(inv.FileName),
			escapeField(strValue(inv.InvoiceNumber)),
			escapeField(strValue(inv.SupplierNumber)),
			escapeField(strValue(inv.InvoiceDate)),
			escapeField(strValue(inv.DueDate)),
			escapeField(numValue(inv.InvoiceTotal)),
			escapeField(numValue(inv.TotalFreight)),
		}

		if len(inv.LineItems) == 0 {
			row := append(append([]string{}, prefix...), "", "", "", "", "")
			rows = append(rows, strings.Join(row, "\t"))
			continue
		}

		for _, item := range inv.LineItems {
			row := append(append([]string{}, prefix...),
				escapeField(item.Description),
				escapeField(item.Category),
				escapeField(formatNumber(item.Quantity)),
				escapeField(formatNumber(item.UnitPrice)),
				escapeField(formatNumber(item.LineTotal)),
			)
			rows = append(rows, strings.Join(row, "\t"))
		}
	}

	return strings.Join(rows, "\n")
}

// escapeField replaces tab and newline characters with a space so a field
// value can never break the row/column structure when pasted.
func escapeField(field string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, field)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
