package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

var _ = Describe("Reconcile", func() {
	var (
		input  Invoice
		result Invoice
	)

	JustBeforeEach(func() {
		result = Reconcile(input)
	})

	When("the totals reconcile exactly", func() {
		BeforeEach(func() {
			input = Invoice{
				InvoiceTotal: numPtr(100.00),
				TotalFreight: numPtr(20.00),
				LineItems: []LineItem{
					{Description: "Widgets", LineTotal: 50.00},
					{Description: "Gadgets", LineTotal: 30.00},
				},
			}
		})

		It("should not set a validation error", func() {
			Expect(result.ValidationError).To(BeEmpty())
		})

		It("should leave the rest of the record unchanged", func() {
			Expect(result.InvoiceTotal).To(Equal(input.InvoiceTotal))
			Expect(result.LineItems).To(Equal(input.LineItems))
		})
	})

	When("the discrepancy is exactly at the tolerance", func() {
		BeforeEach(func() {
			input = Invoice{
				InvoiceTotal: numPtr(100.00),
				TotalFreight: numPtr(19.99),
				LineItems: []LineItem{
					{LineTotal: 80.00},
				},
			}
		})

		It("should not set a validation error", func() {
			Expect(result.ValidationError).To(BeEmpty())
		})
	})

	When("the discrepancy exceeds the tolerance", func() {
		BeforeEach(func() {
			input = Invoice{
				InvoiceTotal: numPtr(100.00),
				TotalFreight: numPtr(15.00),
				LineItems: []LineItem{
					{LineTotal: 80.00},
				},
			}
		})

		It("should set a validation error", func() {
			Expect(result.ValidationError).NotTo(BeEmpty())
		})

		It("should state the stated total, calculated total, and discrepancy as currency", func() {
			Expect(result.ValidationError).To(ContainSubstring("$100.00"))
			Expect(result.ValidationError).To(ContainSubstring("$95.00"))
			Expect(result.ValidationError).To(ContainSubstring("$5.00"))
		})
	})

	When("freight is absent", func() {
		BeforeEach(func() {
			input = Invoice{
				InvoiceTotal: numPtr(80.00),
				LineItems: []LineItem{
					{LineTotal: 80.00},
				},
			}
		})

		It("should treat freight as zero and not set a validation error", func() {
			Expect(result.ValidationError).To(BeEmpty())
		})
	})

	When("the invoice total is absent", func() {
		BeforeEach(func() {
			input = Invoice{
				LineItems: []LineItem{
					{LineTotal: 80.00},
				},
			}
		})

		It("should skip validation entirely", func() {
			Expect(result.ValidationError).To(BeEmpty())
		})
	})

	When("the line item list is absent", func() {
		BeforeEach(func() {
			input = Invoice{
				InvoiceTotal: numPtr(80.00),
				LineItems:    nil,
			}
		})

		It("should skip validation entirely", func() {
			Expect(result.ValidationError).To(BeEmpty())
		})
	})

	When("the line item list is present but empty", func() {
		BeforeEach(func() {
			input = Invoice{
				InvoiceTotal: numPtr(80.00),
				LineItems:    []LineItem{},
			}
		})

		It("should flag the whole stated total as a discrepancy", func() {
			Expect(result.ValidationError).To(ContainSubstring("$80.00"))
			Expect(result.ValidationError).To(ContainSubstring("$0.00"))
		})
	})

	When("amounts reach the thousands", func() {
		BeforeEach(func() {
			input = Invoice{
				InvoiceTotal: numPtr(5234.56),
				TotalFreight: numPtr(0),
				LineItems: []LineItem{
					{LineTotal: 1000.00},
				},
			}
		})

		It("should format the amounts with thousands separators", func() {
			Expect(result.ValidationError).To(ContainSubstring("$5,234.56"))
			Expect(result.ValidationError).To(ContainSubstring("$1,000.00"))
			Expect(result.ValidationError).To(ContainSubstring("$4,234.56"))
		})
	})

	When("floating point noise stays within the tolerance", func() {
		BeforeEach(func() {
			input = Invoice{
				InvoiceTotal: numPtr(0.30),
				LineItems: []LineItem{
					{LineTotal: 0.10},
					{LineTotal: 0.20},
				},
			}
		})

		It("should not set a validation error", func() {
			Expect(result.ValidationError).To(BeEmpty())
		})
	})
})
