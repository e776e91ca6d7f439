package invoice

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExportTSV", func() {
	var (
		invoices []Invoice
		output   string
		lines    []string
	)

	JustBeforeEach(func() {
		output = ExportTSV(invoices)
		lines = strings.Split(output, "\n")
	})

	expectedHeader := strings.Join([]string{
		"FileName", "InvoiceNumber", "SupplierNumber", "InvoiceDate", "DueDate",
		"InvoiceTotal", "TotalFreight",
		"LineDescription", "LineCategory", "LineQuantity", "LineUnitPrice", "LineTotal",
	}, "\t")

	When("exporting no invoices", func() {
		BeforeEach(func() {
			invoices = nil
		})

		It("should emit just the header row", func() {
			Expect(output).To(Equal(expectedHeader))
		})
	})

	When("exporting invoices with line items", func() {
		BeforeEach(func() {
			invoices = []Invoice{
				{
					FileName:       "acme.pdf",
					InvoiceNumber:  strPtr("INV-1001"),
					SupplierNumber: strPtr("ACME-7"),
					InvoiceDate:    strPtr("2024-01-15"),
					DueDate:        strPtr("2024-02-14"),
					InvoiceTotal:   numPtr(120.50),
					TotalFreight:   numPtr(10),
					LineItems: []LineItem{
						{Description: "Stapler", Category: "Office Supplies", Quantity: 2, UnitPrice: 5.25, LineTotal: 10.50},
						{Description: "Desk", Category: "Furniture", Quantity: 1, UnitPrice: 100, LineTotal: 100},
					},
				},
				{
					FileName:      "globex.png",
					InvoiceNumber: strPtr("INV-2002"),
					InvoiceTotal:  numPtr(999),
					LineItems: []LineItem{
						{Description: "Consulting retainer", Category: "Consulting Services", Quantity: 1, UnitPrice: 999, LineTotal: 999},
					},
				},
			}
		})

		It("should emit the fixed 12-column header first", func() {
			Expect(lines[0]).To(Equal(expectedHeader))
		})

		It("should emit one row per line item in record order", func() {
			Expect(lines).To(HaveLen(4))
			Expect(lines[1]).To(HavePrefix("acme.pdf\tINV-1001\t"))
			Expect(lines[2]).To(HavePrefix("acme.pdf\tINV-1001\t"))
			Expect(lines[3]).To(HavePrefix("globex.png\tINV-2002\t"))
		})

		It("should keep every row at exactly 12 columns", func() {
			for _, line := range lines {
				Expect(strings.Split(line, "\t")).To(HaveLen(12))
			}
		})

		It("should render the line item fields", func() {
			Expect(lines[1]).To(Equal("acme.pdf\tINV-1001\tACME-7\t2024-01-15\t2024-02-14\t120.5\t10\tStapler\tOffice Supplies\t2\t5.25\t10.5"))
		})

		It("should render absent optionals as empty fields", func() {
			Expect(lines[3]).To(Equal("globex.png\tINV-2002\t\t\t\t999\t\tConsulting retainer\tConsulting Services\t1\t999\t999"))
		})
	})

	When("an invoice has zero line items", func() {
		BeforeEach(func() {
			invoices = []Invoice{
				{
					FileName:      "empty.pdf",
					InvoiceNumber: strPtr("INV-3003"),
					InvoiceTotal:  numPtr(50),
					LineItems:     []LineItem{},
				},
			}
		})

		It("should still emit exactly one row for it", func() {
			Expect(lines).To(HaveLen(2))
		})

		It("should leave the line item columns empty", func() {
			Expect(lines[1]).To(Equal("empty.pdf\tINV-3003\t\t\t\t50\t\t\t\t\t\t"))
		})
	})

	When("a field value contains tabs and newlines", func() {
		BeforeEach(func() {
			invoices = []Invoice{
				{
					FileName: "messy\tname.pdf",
					LineItems: []LineItem{
						{Description: "Line one\nLine two\r\nLine three", Category: "Misc"},
					},
				},
			}
		})

		It("should replace each control character with one space", func() {
			Expect(lines[1]).To(ContainSubstring("messy name.pdf"))
			Expect(lines[1]).To(ContainSubstring("Line one Line two  Line three"))
		})

		It("should not introduce extra rows or columns", func() {
			Expect(lines).To(HaveLen(2))
			Expect(strings.Split(lines[1], "\t")).To(HaveLen(12))
		})
	})
})
