package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientWithoutAPIKeyStartsDegraded(t *testing.T) {
	client, err := NewClient(context.Background(), &Config{})
	require.NoError(t, err, "a missing key must not prevent startup")

	// Extraction fails per call instead; the record lands in error status
	// and stays editable by hand.
	_, err = client.ExtractInvoice(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "missing_api_key", extErr.Op)

	assert.NoError(t, client.Close())
}

func TestNewClientNilConfigUsesDefaults(t *testing.T) {
	client, err := NewClient(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Timeout, client.timeout)
	assert.NoError(t, client.Close())
}
