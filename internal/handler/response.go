package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartinvoice/invoice-assistant-service/internal/model"
)

// Common error messages
const (
	ErrInvalidInput     = "Invalid input format"
	ErrInvalidID        = "Invalid ID provided"
	ErrResourceNotFound = "Resource not found"
	ErrInternalServer   = "Internal server error"
	ErrFileUpload       = "Failed to upload file"
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, message string, details ...model.ErrorDetail) {
	response := model.ErrorResponse{
		Status:  http.StatusText(statusCode),
		Message: message,
		Details: details,
	}
	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...model.ErrorDetail) {
	respondWithError(c, http.StatusBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, http.StatusNotFound, message)
}

// respondInternalServerError sends a 500 Internal Server Error response
func respondInternalServerError(c *gin.Context, message string) {
	respondWithError(c, http.StatusInternalServerError, message)
}

// respondOK sends a 200 OK response with data
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// respondNoContent sends a 204 No Content response
func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
