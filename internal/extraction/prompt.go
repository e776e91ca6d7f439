package extraction

// invoiceScanPrompt is the shared instruction used by all LLM providers for
// extracting structured data from invoice documents
const invoiceScanPrompt = `Analyze the provided invoice document. Perform OCR and extract the following information:
- Invoice Number
- Supplier Number
- Invoice Date
- Due Date
- Invoice Total amount
- All line items.

For each line item, extract:
- Description
- Quantity
- Unit Price
- Total line item amount

Based on the line item description, derive a relevant business category (e.g., 'Office Supplies', 'Software License', 'Consulting Services', 'Hardware').

IMPORTANT: Identify all line items related to 'freight', 'shipping', or 'delivery'. Sum the 'lineTotal' for these specific items and provide the result in the top-level field 'totalFreight'. These freight-related lines should then be EXCLUDED from the main 'lineItems' array. If no freight charges are found, set 'totalFreight' to 0.

Return the extracted data in the specified JSON format. Ensure all monetary values are numbers.
Dates must be in YYYY-MM-DD format.
If a top-level field like 'Supplier Number' or 'Due Date' is not found, omit it rather than inventing a value.`
