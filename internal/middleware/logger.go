package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// sensitiveHeaderPatterns contains regex patterns for headers that must be
// redacted in logs
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)cookie`),
}

// responseWriter is a custom response writer to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	Format string // "json" or "pretty"
	Level  string // "debug", "info", "warn", "error"
}

// LogEntry represents a structured log entry for one request
type LogEntry struct {
	Timestamp    string            `json:"timestamp"`
	Method       string            `json:"method"`
	Path         string            `json:"path"`
	StatusCode   int               `json:"status_code"`
	Latency      string            `json:"latency"`
	ClientIP     string            `json:"client_ip"`
	Headers      map[string]string `json:"headers,omitempty"`
	ResponseBody interface{}       `json:"response_body,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// RequestResponseLogger creates a middleware that logs all API requests and
// responses. Request bodies are never logged: uploads are multipart image
// payloads, so only metadata is useful. Binary responses (image previews,
// CSV downloads) are elided the same way.
func RequestResponseLogger(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		responseBodyWriter := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = responseBodyWriter

		c.Next()

		latency := time.Since(startTime)
		entry := buildLogEntry(c, responseBodyWriter, latency)

		if config.Format == "pretty" {
			printPrettyLog(entry)
		} else {
			printJSONLog(entry)
		}
	}
}

// buildLogEntry constructs a log entry from request and response data
func buildLogEntry(c *gin.Context, w *responseWriter, latency time.Duration) LogEntry {
	entry := LogEntry{
		Timestamp:  time.Now().Format(time.RFC3339),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		StatusCode: c.Writer.Status(),
		Latency:    latency.String(),
		ClientIP:   c.ClientIP(),
		Headers:    redactedHeaders(c),
	}

	if len(c.Errors) > 0 {
		entry.Error = c.Errors.String()
	}

	contentType := c.Writer.Header().Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var parsed interface{}
		if err := json.Unmarshal(w.body.Bytes(), &parsed); err == nil {
			entry.ResponseBody = parsed
		}
	} else if w.body.Len() > 0 {
		entry.ResponseBody = fmt.Sprintf("<%d bytes of %s>", w.body.Len(), contentType)
	}

	return entry
}

// redactedHeaders collects request headers with sensitive values masked
func redactedHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		value := strings.Join(values, ", ")
		for _, pattern := range sensitiveHeaderPatterns {
			if pattern.MatchString(name) {
				value = "[REDACTED]"
				break
			}
		}
		headers[name] = value
	}
	return headers
}

// printJSONLog outputs the log entry as a single JSON line
func printJSONLog(entry LogEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf("{\"error\":\"failed to marshal log entry: %v\"}\n", err)
		return
	}
	fmt.Println(string(data))
}

// printPrettyLog outputs the log entry in a human-readable format
func printPrettyLog(entry LogEntry) {
	fmt.Printf("[%s] %s %s -> %d (%s) from %s\n",
		entry.Timestamp,
		entry.Method,
		entry.Path,
		entry.StatusCode,
		entry.Latency,
		entry.ClientIP,
	)
	if entry.Error != "" {
		fmt.Printf("  error: %s\n", entry.Error)
	}
}
