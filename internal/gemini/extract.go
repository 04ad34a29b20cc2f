package gemini

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
)

// extractionPrompt is the fixed instruction sent with every invoice image.
const extractionPrompt = "請分析這張發票並提取以下資訊：日期 (YYYY/MM/DD)、發票號碼、賣方名稱、總金額。如果有多個項目也請提取明細。請以繁體中文回答。"

// invoiceSchema is the fixed response schema the model is constrained to:
// date, number, vendor and totalAmount are required, items are optional but
// each item must carry name, quantity and price.
func invoiceSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"date": {
				Type:        genai.TypeString,
				Description: "發票日期格式 YYYY/MM/DD",
			},
			"number": {
				Type:        genai.TypeString,
				Description: "發票號碼",
			},
			"vendor": {
				Type:        genai.TypeString,
				Description: "商家名稱",
			},
			"totalAmount": {
				Type:        genai.TypeNumber,
				Description: "總金額",
			},
			"items": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":     {Type: genai.TypeString, Description: "品項名稱"},
						"quantity": {Type: genai.TypeNumber, Description: "數量"},
						"price":    {Type: genai.TypeNumber, Description: "單價"},
					},
					Required: []string{"name", "quantity", "price"},
				},
			},
		},
		Required: []string{"date", "number", "vendor", "totalAmount"},
	}
}

// ExtractInvoice sends the image to the model and returns the structured
// invoice fields. No size or format validation happens locally; anything the
// remote side rejects surfaces as an ExtractionError. The call is never
// retried.
func (c *Client) ExtractInvoice(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractedFields, error) {
	if c.model == nil {
		return nil, &ExtractionError{Op: "missing_api_key"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parts := []genai.Part{
		genai.ImageData(imageFormat(mimeType), imageData),
		genai.Text(extractionPrompt),
	}

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, &ExtractionError{
			Op:  "generate_content",
			Err: err,
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &ExtractionError{
			Op: "empty_response",
		}
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	return parseExtractedFields(responseText.String())
}

// imageFormat maps a declared MIME type to the format suffix genai expects.
// Unknown or empty types fall back to jpeg, the common case for photos.
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/")
	switch format {
	case "png", "jpeg", "webp", "heic", "heif":
		return format
	case "jpg":
		return "jpeg"
	default:
		return "jpeg"
	}
}
