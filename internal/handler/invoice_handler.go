package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartinvoice/invoice-assistant-service/internal/export"
	"github.com/smartinvoice/invoice-assistant-service/internal/model"
	"github.com/smartinvoice/invoice-assistant-service/internal/service"
)

// InvoiceHandler handles HTTP requests for the invoice collection
type InvoiceHandler struct {
	service     service.InvoiceServicer
	maxFileSize int64
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(svc service.InvoiceServicer, maxFileSize int64) *InvoiceHandler {
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024 // 10MB default
	}
	return &InvoiceHandler{
		service:     svc,
		maxFileSize: maxFileSize,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *InvoiceHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/invoices/upload", h.UploadInvoices)
	router.GET("/v1/invoices", h.ListInvoices)
	router.PUT("/v1/invoices/:id", h.UpdateInvoice)
	router.DELETE("/v1/invoices/:id", h.DeleteInvoice)
	router.GET("/v1/invoices/:id/image", h.InvoiceImage)
	router.GET("/v1/export/csv", h.ExportCSV)
	router.GET("/v1/export/clipboard", h.ExportClipboard)
}

// UploadInvoices handles a batch upload of invoice images
// @Summary Upload invoice images
// @Description Accepts one or more invoice photos, inserts a processing placeholder per file and starts AI extraction in the background
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Invoice image files"
// @Success 200 {object} model.UploadResponse "Placeholder records for the accepted files"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Router /v1/invoices/upload [post]
func (h *InvoiceHandler) UploadInvoices(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxFileSize); err != nil {
		respondBadRequest(c, "Failed to parse form data: "+err.Error())
		return
	}

	form := c.Request.MultipartForm
	headers := form.File["files"]
	if len(headers) == 0 {
		// Empty selection is a no-op, mirrored as an empty batch response
		respondOK(c, model.UploadResponse{
			Success:   true,
			Uploading: h.service.Uploading(),
			Invoices:  []model.InvoiceDTO{},
		})
		return
	}

	for _, header := range headers {
		if header.Size > h.maxFileSize {
			respondBadRequest(c, fmt.Sprintf("File %s exceeds the size limit", header.Filename))
			return
		}
	}

	uploads, err := readFormFiles(headers)
	if err != nil {
		respondInternalServerError(c, "Failed to read file data: "+err.Error())
		return
	}

	log.Printf("Accepted %d invoice file(s) for extraction", len(uploads))
	placeholders := h.service.HandleFiles(c.Request.Context(), uploads)

	respondOK(c, model.UploadResponse{
		Success:   true,
		Uploading: h.service.Uploading(),
		Invoices:  placeholders,
	})
}

// ListInvoices returns the ordered invoice collection
// @Summary List invoices
// @Description Returns every invoice record, most recently uploaded first, plus the batch-upload flag
// @Tags invoices
// @Produce json
// @Success 200 {object} model.InvoiceListResponse
// @Router /v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices := h.service.ListInvoices()
	respondOK(c, model.InvoiceListResponse{
		Count:     len(invoices),
		Uploading: h.service.Uploading(),
		Invoices:  invoices,
	})
}

// UpdateInvoice replaces the user-editable fields of an invoice
// @Summary Edit an invoice
// @Description Replaces date, number, vendor, total amount and items atomically. ID and status are never changed by an edit.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body model.UpdateInvoiceRequest true "Edited fields"
// @Success 200 {object} model.InvoiceDTO
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 404 {object} model.ErrorResponse "Unknown invoice"
// @Router /v1/invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	var req model.UpdateInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	dto, ok := h.service.UpdateInvoice(id, &req)
	if !ok {
		respondNotFound(c, ErrResourceNotFound)
		return
	}

	respondOK(c, dto)
}

// DeleteInvoice removes an invoice from the collection
// @Summary Delete an invoice
// @Description Removes the record and releases its preview image. A deletion races an in-flight extraction deliberately: the late result is dropped.
// @Tags invoices
// @Param id path string true "Invoice ID"
// @Success 204 "Deleted"
// @Failure 404 {object} model.ErrorResponse "Unknown invoice"
// @Router /v1/invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	if !h.service.DeleteInvoice(id) {
		respondNotFound(c, ErrResourceNotFound)
		return
	}

	respondNoContent(c)
}

// InvoiceImage serves the preview bytes for an invoice
// @Summary Invoice preview image
// @Tags invoices
// @Produce octet-stream
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} model.ErrorResponse "Unknown invoice"
// @Router /v1/invoices/{id}/image [get]
func (h *InvoiceHandler) InvoiceImage(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	data, contentType, ok := h.service.InvoiceImage(id)
	if !ok {
		respondNotFound(c, ErrResourceNotFound)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Data(http.StatusOK, contentType, data)
}

// ExportCSV downloads the completed invoices as a BOM-prefixed CSV file
// @Summary Export completed invoices as CSV
// @Description Produces a UTF-8 CSV with a leading byte-order mark. Invoices still processing or errored are excluded. With zero completed invoices the export is a silent no-op.
// @Tags invoices
// @Produce text/csv
// @Success 200 {file} binary
// @Success 204 "Nothing to export"
// @Router /v1/export/csv [get]
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	completed := export.Completed(h.service.ListInvoices())
	if len(completed) == 0 {
		respondNoContent(c)
		return
	}

	data, err := export.CSV(completed)
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	filename := export.Filename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportClipboard returns the completed invoices as tab-separated text
// @Summary Completed invoices as clipboard text
// @Description Tab-separated lines without an items column, ready for clipboard copy. Zero completed invoices yields no content.
// @Tags invoices
// @Produce plain
// @Success 200 {string} string
// @Success 204 "Nothing to copy"
// @Router /v1/export/clipboard [get]
func (h *InvoiceHandler) ExportClipboard(c *gin.Context) {
	completed := export.Completed(h.service.ListInvoices())
	if len(completed) == 0 {
		respondNoContent(c)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.ClipboardText(completed)))
}
