// Package export renders completed invoices as delimiter-separated text:
// a byte-order-marked CSV file for download and a tab-separated block for
// clipboard copy. Records still processing or errored are excluded from
// both paths by policy.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
	"github.com/smartinvoice/invoice-assistant-service/internal/model"
)

// utf8BOM makes spreadsheet applications detect the encoding of the
// downloaded file; the column headers are Traditional Chinese.
const utf8BOM = "\uFEFF"

var csvHeader = []string{"日期", "發票號碼", "商家", "總金額", "明細"}

const clipboardHeader = "日期\t發票號碼\t商家\t總金額"

// Completed filters the collection down to records whose extraction
// succeeded, preserving order.
func Completed(invoices []model.InvoiceDTO) []model.InvoiceDTO {
	completed := make([]model.InvoiceDTO, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == string(domain.StatusCompleted) {
			completed = append(completed, inv)
		}
	}
	return completed
}

// CSV renders the given invoices as a UTF-8 CSV document with a leading
// byte-order mark: one header row, one row per invoice, items flattened
// into a single description column.
func CSV(invoices []model.InvoiceDTO) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, inv := range invoices {
		row := []string{
			inv.Date,
			inv.Number,
			inv.Vendor,
			formatAmount(inv.TotalAmount),
			itemSummary(inv.Items),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ClipboardText renders the given invoices as tab-separated lines for
// clipboard copy. No items column.
func ClipboardText(invoices []model.InvoiceDTO) string {
	lines := make([]string, 0, len(invoices)+1)
	lines = append(lines, clipboardHeader)
	for _, inv := range invoices {
		lines = append(lines, strings.Join([]string{
			inv.Date,
			inv.Number,
			inv.Vendor,
			formatAmount(inv.TotalAmount),
		}, "\t"))
	}
	return strings.Join(lines, "\n")
}

// Filename returns the download name for a CSV export taken at the given
// instant, e.g. invoices_1714521600000.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("invoices_%d.csv", now.UnixMilli())
}

// itemSummary flattens line items into "name(quantity)" entries joined by
// a semicolon delimiter.
func itemSummary(items []model.InvoiceItemDTO) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s(%s)", item.Name, formatAmount(item.Quantity)))
	}
	return strings.Join(parts, "; ")
}

// formatAmount renders a number in its shortest decimal form, the way the
// values appear on screen.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
