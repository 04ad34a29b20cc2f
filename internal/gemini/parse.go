package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
)

// parseExtractedFields parses the model's JSON response. JSON mode normally
// returns a bare object, but markdown fences still show up occasionally, so
// the parser strips them and locates the outermost object before decoding.
// Any deviation from the schema surfaces as an ExtractionError, never as a
// partial result.
func parseExtractedFields(text string) (*domain.ExtractedFields, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, &ExtractionError{
			Op:  "parse_response",
			Err: fmt.Errorf("no JSON object found in response"),
		}
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, &ExtractionError{
			Op:  "parse_response",
			Err: fmt.Errorf("invalid JSON object in response"),
		}
	}

	text = text[startIdx : endIdx+1]

	var fields domain.ExtractedFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, &ExtractionError{
			Op:  "parse_response",
			Err: fmt.Errorf("unmarshaling extracted fields: %w", err),
		}
	}

	return &fields, nil
}
