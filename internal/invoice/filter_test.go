package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FilterInvoices", func() {
	var (
		invoices  []Invoice
		query     string
		startDate string
		endDate   string
		result    []Invoice
	)

	names := func(invs []Invoice) []string {
		out := make([]string, 0, len(invs))
		for _, inv := range invs {
			out = append(out, inv.FileName)
		}
		return out
	}

	BeforeEach(func() {
		query = ""
		startDate = ""
		endDate = ""
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
					{Description: "Stapler", Category: "Office Supplies"},
				},
			},
			{
				FileName:      "globex.png",
				InvoiceNumber: strPtr("INV-2002"),
				InvoiceDate:   strPtr("2024-01-31"),
				InvoiceTotal:  numPtr(999),
				LineItems: []LineItem{
					{Description: "Consulting retainer", Category: "Consulting Services"},
				},
			},
			{
				FileName:      "undated.jpg",
				InvoiceNumber: strPtr("INV-3003"),
				InvoiceDate:   strPtr("not-a-date"),
				LineItems:     []LineItem{},
			},
		}
	})

	JustBeforeEach(func() {
		result = FilterInvoices(invoices, query, startDate, endDate)
	})

	When("no query and no date range are given", func() {
		It("should return every invoice in order", func() {
			Expect(names(result)).To(Equal([]string{"acme.pdf", "globex.png", "undated.jpg"}))
		})
	})

	When("the query matches an invoice number", func() {
		BeforeEach(func() {
			query = "inv-1001"
		})

		It("should match case-insensitively", func() {
			Expect(names(result)).To(Equal([]string{"acme.pdf"}))
		})
	})

	When("the query matches a supplier number", func() {
		BeforeEach(func() {
			query = "ACME"
		})

		It("should return the matching invoice", func() {
			Expect(names(result)).To(Equal([]string{"acme.pdf"}))
		})
	})

	When("the query matches a line item description", func() {
		BeforeEach(func() {
			query = "stapler"
		})

		It("should return the matching invoice", func() {
			Expect(names(result)).To(Equal([]string{"acme.pdf"}))
		})
	})

	When("the query matches a line item category", func() {
		BeforeEach(func() {
			query = "consulting serv"
		})

		It("should return the matching invoice", func() {
			Expect(names(result)).To(Equal([]string{"globex.png"}))
		})
	})

	When("the query matches the invoice total rendered as text", func() {
		BeforeEach(func() {
			query = "120.5"
		})

		It("should return the matching invoice", func() {
			Expect(names(result)).To(Equal([]string{"acme.pdf"}))
		})
	})

	When("the query matches nothing", func() {
		BeforeEach(func() {
			query = "zzzzzz"
		})

		It("should return an empty list", func() {
			Expect(result).To(BeEmpty())
		})
	})

	When("a date range covers January 2024", func() {
		BeforeEach(func() {
			startDate = "2024-01-01"
			endDate = "2024-01-31"
		})

		It("should include an invoice dated on the end boundary", func() {
			Expect(names(result)).To(ContainElement("globex.png"))
		})

		It("should include every dated invoice in the range", func() {
			Expect(names(result)).To(ContainElement("acme.pdf"))
		})

		It("should pass invoices with an unparseable date regardless of range", func() {
			Expect(names(result)).To(ContainElement("undated.jpg"))
		})
	})

	When("the range excludes all dated invoices", func() {
		BeforeEach(func() {
			startDate = "2024-03-01"
			endDate = "2024-03-31"
		})

		It("should only pass the invoice with an unparseable date", func() {
			Expect(names(result)).To(Equal([]string{"undated.jpg"}))
		})
	})

	When("only a start boundary is given", func() {
		BeforeEach(func() {
			startDate = "2024-01-20"
		})

		It("should enforce just that boundary", func() {
			Expect(names(result)).To(Equal([]string{"globex.png", "undated.jpg"}))
		})
	})

	When("only an end boundary is given", func() {
		BeforeEach(func() {
			endDate = "2024-01-20"
		})

		It("should enforce just that boundary", func() {
			Expect(names(result)).To(Equal([]string{"acme.pdf", "undated.jpg"}))
		})
	})

	When("a range boundary is unparseable", func() {
		BeforeEach(func() {
			startDate = "last tuesday"
			endDate = "2024-01-20"
		})

		It("should not enforce the invalid boundary", func() {
			Expect(names(result)).To(Equal([]string{"acme.pdf", "undated.jpg"}))
		})
	})

	When("both a query and a date range are given", func() {
		BeforeEach(func() {
			query = "INV"
			startDate = "2024-01-01"
			endDate = "2024-01-20"
		})

		It("should require both predicates for dated invoices", func() {
			Expect(names(result)).To(Equal([]string{"acme.pdf", "undated.jpg"}))
		})
	})

	When("a record has no invoice date at all", func() {
		BeforeEach(func() {
			invoices = append(invoices, Invoice{FileName: "nodate.pdf", LineItems: []LineItem{}})
			startDate = "2024-01-01"
			endDate = "2024-01-31"
		})

		It("should exempt it from the date predicate", func() {
			Expect(names(result)).To(ContainElement("nodate.pdf"))
		})
	})
})
