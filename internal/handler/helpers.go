package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/smartinvoice/invoice-assistant-service/internal/model"
)

// getPathParam retrieves a path parameter and validates it's not empty
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}

// readFormFiles reads every file in the multipart field in presented order.
// The MIME type declared by the browser is carried as-is; any rejection of
// an unsupported format is the remote model's to make.
func readFormFiles(headers []*multipart.FileHeader) ([]model.FileUpload, error) {
	uploads := make([]model.FileUpload, 0, len(headers))
	for _, header := range headers {
		upload, err := readFormFile(header)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

// readFormFile reads one multipart file into memory
func readFormFile(header *multipart.FileHeader) (model.FileUpload, error) {
	f, err := header.Open()
	if err != nil {
		return model.FileUpload{}, fmt.Errorf("opening %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.FileUpload{}, fmt.Errorf("reading %s: %w", header.Filename, err)
	}

	return model.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
