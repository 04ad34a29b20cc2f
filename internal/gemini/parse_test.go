package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
)

func TestParseExtractedFields(t *testing.T) {
	fields, err := parseExtractedFields(`{
		"date": "2024/05/01",
		"number": "AB12345678",
		"vendor": "測試商店",
		"totalAmount": 150,
		"items": [{"name": "咖啡", "quantity": 1, "price": 150}]
	}`)

	require.NoError(t, err)
	assert.Equal(t, "2024/05/01", fields.Date)
	assert.Equal(t, "AB12345678", fields.Number)
	assert.Equal(t, "測試商店", fields.Vendor)
	assert.Equal(t, 150.0, fields.TotalAmount)
	require.Len(t, fields.Items, 1)
	assert.Equal(t, domain.InvoiceItem{Name: "咖啡", Quantity: 1, Price: 150}, fields.Items[0])
}

func TestParseStripsMarkdownFences(t *testing.T) {
	fields, err := parseExtractedFields("```json\n{\"date\": \"2024/05/01\", \"number\": \"AB12345678\", \"vendor\": \"測試商店\", \"totalAmount\": 150}\n```")

	require.NoError(t, err)
	assert.Equal(t, "2024/05/01", fields.Date)
	assert.Empty(t, fields.Items)
}

func TestParseLocatesObjectInSurroundingText(t *testing.T) {
	fields, err := parseExtractedFields("以下是提取結果：{\"date\": \"2024/05/01\", \"number\": \"AB12345678\", \"vendor\": \"測試商店\", \"totalAmount\": 150} 謝謝")

	require.NoError(t, err)
	assert.Equal(t, "AB12345678", fields.Number)
}

func TestParseMissingOptionalFieldsDefaultToZero(t *testing.T) {
	fields, err := parseExtractedFields(`{"date": "2024/05/01", "number": "AB12345678", "vendor": "測試商店"}`)

	require.NoError(t, err)
	assert.Equal(t, 0.0, fields.TotalAmount)
	assert.Nil(t, fields.Items)
}

func TestParseRejectsNonJSON(t *testing.T) {
	_, err := parseExtractedFields("無法辨識這張圖片")

	require.Error(t, err)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "parse_response", extErr.Op)
}

func TestParseRejectsTruncatedObject(t *testing.T) {
	_, err := parseExtractedFields(`{"date": "2024/05/01", "number":`)

	require.Error(t, err)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
}

func TestParseRejectsTypeViolation(t *testing.T) {
	// totalAmount must be numeric, not textual
	_, err := parseExtractedFields(`{"date": "2024/05/01", "number": "AB12345678", "vendor": "測試商店", "totalAmount": "一百五十"}`)

	require.Error(t, err)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
}

func TestImageFormat(t *testing.T) {
	assert.Equal(t, "png", imageFormat("image/png"))
	assert.Equal(t, "jpeg", imageFormat("image/jpeg"))
	assert.Equal(t, "jpeg", imageFormat("image/jpg"))
	assert.Equal(t, "webp", imageFormat("IMAGE/WEBP"))
	assert.Equal(t, "jpeg", imageFormat(""))
	assert.Equal(t, "jpeg", imageFormat("application/pdf"))
}

func TestExtractionErrorFormatting(t *testing.T) {
	err := &ExtractionError{Op: "empty_response"}
	assert.Equal(t, "gemini extraction error: empty_response", err.Error())
	assert.Nil(t, err.Unwrap())
}
