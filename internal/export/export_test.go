package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
	"github.com/smartinvoice/invoice-assistant-service/internal/model"
)

func mixedCollection() []model.InvoiceDTO {
	return []model.InvoiceDTO{
		{
			ID: "inv-3", Date: domain.ProcessingSentinel, Number: domain.ProcessingSentinel,
			Vendor: domain.ProcessingSentinel, Status: string(domain.StatusProcessing),
		},
		{
			ID: "inv-2", Date: "2024/05/02", Number: "CD87654321", Vendor: "小吃店",
			TotalAmount: 80.5, Status: string(domain.StatusCompleted),
			Items: []model.InvoiceItemDTO{
				{Name: "滷肉飯", Quantity: 1, Price: 50},
				{Name: "豆漿", Quantity: 2, Price: 15.25},
			},
		},
		{
			ID: "inv-1", Date: domain.ProcessingSentinel, Number: domain.ProcessingSentinel,
			Vendor: domain.ProcessingSentinel, Status: string(domain.StatusError),
		},
		{
			ID: "inv-0", Date: "2024/05/01", Number: "AB12345678", Vendor: "測試商店",
			TotalAmount: 150, Status: string(domain.StatusCompleted),
			Items: []model.InvoiceItemDTO{{Name: "咖啡", Quantity: 1, Price: 150}},
		},
	}
}

func TestCompletedExcludesProcessingAndErrored(t *testing.T) {
	completed := Completed(mixedCollection())

	require.Len(t, completed, 2)
	assert.Equal(t, "inv-2", completed[0].ID)
	assert.Equal(t, "inv-0", completed[1].ID)
}

func TestCompletedEmptyCollection(t *testing.T) {
	assert.Empty(t, Completed(nil))
	assert.Empty(t, Completed([]model.InvoiceDTO{
		{ID: "inv-1", Status: string(domain.StatusProcessing)},
	}))
}

func TestCSVFormat(t *testing.T) {
	data, err := CSV(Completed(mixedCollection()))
	require.NoError(t, err)

	text := string(data)
	require.True(t, strings.HasPrefix(text, "\uFEFF"), "CSV must start with a byte-order mark")

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(text, "\uFEFF"), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "日期,發票號碼,商家,總金額,明細", lines[0])
	assert.Equal(t, "2024/05/02,CD87654321,小吃店,80.5,滷肉飯(1); 豆漿(2)", lines[1])
	assert.Equal(t, "2024/05/01,AB12345678,測試商店,150,咖啡(1)", lines[2])
}

func TestCSVQuotesEmbeddedDelimiters(t *testing.T) {
	data, err := CSV([]model.InvoiceDTO{{
		Date: "2024/05/01", Number: "AB12345678",
		Vendor: `茶,飲 "專門" 店`, TotalAmount: 45,
		Status: string(domain.StatusCompleted),
	}})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"茶,飲 ""專門"" 店"`)
}

func TestClipboardTextFormat(t *testing.T) {
	text := ClipboardText(Completed(mixedCollection()))

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "日期\t發票號碼\t商家\t總金額", lines[0])
	assert.Equal(t, "2024/05/02\tCD87654321\t小吃店\t80.5", lines[1])
	assert.Equal(t, "2024/05/01\tAB12345678\t測試商店\t150", lines[2])

	// No items column in the clipboard path
	assert.NotContains(t, text, "咖啡")
}

func TestFilename(t *testing.T) {
	now := time.UnixMilli(1714521600000)
	assert.Equal(t, "invoices_1714521600000.csv", Filename(now))
}
