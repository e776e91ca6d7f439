package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// reconcileTolerance allows one cent of currency rounding before an invoice
// is flagged as inconsistent.
var reconcileTolerance = decimal.RequireFromString("0.01")

// Reconcile cross-checks the stated invoice total against the sum of the
// line item totals plus freight. A discrepancy beyond the tolerance
// annotates the record with a warning; it never rejects it. Invoices with
// no stated total or no line item list are returned untouched.
func Reconcile(inv Invoice) Invoice {
	if inv.InvoiceTotal == nil || inv.LineItems == nil {
		return inv
	}

	lineItemsSum := decimal.Zero
	for _, item := range inv.LineItems {
		lineItemsSum = lineItemsSum.Add(decimal.NewFromFloat(item.LineTotal))
	}

	freight := decimal.Zero
	if inv.TotalFreight != nil {
		freight = decimal.NewFromFloat(*inv.TotalFreight)
	}

	stated := decimal.NewFromFloat(*inv.InvoiceTotal)
	calculated := lineItemsSum.Add(freight)
	discrepancy := stated.Sub(calculated).Abs()

	if discrepancy.GreaterThan(reconcileTolerance) {
		inv.ValidationError = fmt.Sprintf(
			"Warning: Invoice total of %s does not match the sum of line items plus freight (%s). Discrepancy is %s.",
			formatUSD(stated), formatUSD(calculated), formatUSD(discrepancy),
		)
	}

	return inv
}

// formatUSD renders a decimal amount as a currency string with thousands
// separators, e.g. $1,234.56 or -$5.00.
func formatUSD(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	fixed := d.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return fmt.Sprintf("%s$%s.%s", sign, strings.Join(groups, ","), fracPart)
}
