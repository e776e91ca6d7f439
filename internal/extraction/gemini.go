package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements the Scanner interface using Google Gemini
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// invoiceResponseSchema constrains the model to the invoice extraction
// contract: field names, types, and the mandatory top-level fields.
func invoiceResponseSchema() *genai.Schema {
	lineItemSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {Type: genai.TypeString, Description: "The name or description of the line item."},
			"category":    {Type: genai.TypeString, Description: "A derived category for the item (e.g., \"Software\", \"Office Supplies\")."},
			"quantity":    {Type: genai.TypeNumber, Description: "The quantity of the item."},
			"unitPrice":   {Type: genai.TypeNumber, Description: "The price per unit of the item."},
			"lineTotal":   {Type: genai.TypeNumber, Description: "The total price for the line item (quantity * unit price)."},
		},
		Required: []string{"description", "category", "quantity", "unitPrice", "lineTotal"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"invoiceNumber":  {Type: genai.TypeString, Description: "The unique invoice identifier."},
			"supplierNumber": {Type: genai.TypeString, Description: "The supplier or vendor number."},
			"invoiceDate":    {Type: genai.TypeString, Description: "The date the invoice was issued (YYYY-MM-DD)."},
			"dueDate":        {Type: genai.TypeString, Description: "The date the payment is due (YYYY-MM-DD)."},
			"invoiceTotal":   {Type: genai.TypeNumber, Description: "The final total amount of the invoice."},
			"totalFreight":   {Type: genai.TypeNumber, Description: "The sum of all line items identified as freight or shipping costs."},
			"lineItems": {
				Type:        genai.TypeArray,
				Description: "A list of all items or services being billed, excluding freight and shipping lines.",
				Items:       lineItemSchema,
			},
		},
		Required: []string{"invoiceNumber", "invoiceDate", "invoiceTotal", "lineItems"},
	}
}

// NewGemini creates a new Gemini Scanner instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = invoiceResponseSchema()

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// ScanInvoice analyzes an invoice document and extracts structured fields
func (g *Gemini) ScanInvoice(ctx context.Context, fileData []byte, contentType string) (*InvoiceData, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Prepare image data (render PDFs, convert to PNG if needed)
	imageData, err := prepareImageData(fileData, contentType)
	if err != nil {
		return nil, err
	}

	// genai.ImageData expects just the format suffix, and after
	// prepareImageData everything is PNG
	parts := []genai.Part{
		genai.ImageData("png", imageData),
		genai.Text(invoiceScanPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	data, err := parseInvoiceJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing invoice data: %w", err)
	}

	return data, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
