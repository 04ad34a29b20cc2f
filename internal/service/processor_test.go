package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinvoice/invoice-assistant-service/internal/domain"
	"github.com/smartinvoice/invoice-assistant-service/internal/gemini"
	"github.com/smartinvoice/invoice-assistant-service/internal/model"
	"github.com/smartinvoice/invoice-assistant-service/internal/repository"
)

// extractorFunc adapts a function to the InvoiceExtractor interface
type extractorFunc func(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractedFields, error)

func (f extractorFunc) ExtractInvoice(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractedFields, error) {
	return f(ctx, imageData, mimeType)
}

// seqIDGenerator hands out predictable ids for assertions
type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("inv-%d", g.n)
}

func testUploads(n int) []model.FileUpload {
	uploads := make([]model.FileUpload, n)
	for i := range uploads {
		uploads[i] = model.FileUpload{
			Filename:    fmt.Sprintf("invoice-%d.jpg", i+1),
			ContentType: "image/jpeg",
			Data:        []byte{0xFF, 0xD8, byte(i)},
		}
	}
	return uploads
}

func sampleFields() *domain.ExtractedFields {
	return &domain.ExtractedFields{
		Date:        "2024/05/01",
		Number:      "AB12345678",
		Vendor:      "測試商店",
		TotalAmount: 150,
		Items:       []domain.InvoiceItem{{Name: "咖啡", Quantity: 1, Price: 150}},
	}
}

func TestHandleFilesEmptyBatchIsNoOp(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		t.Fatal("extractor must not be called for an empty batch")
		return nil, nil
	}), repo, &seqIDGenerator{})

	placeholders := svc.HandleFiles(context.Background(), nil)

	assert.Empty(t, placeholders)
	assert.Equal(t, 0, repo.Len())
	svc.Shutdown()
	assert.False(t, svc.Uploading())
}

func TestHandleFilesCreatesPlaceholdersNewestFirst(t *testing.T) {
	repo := repository.NewMemoryRepository()
	release := make(chan struct{})
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		<-release
		return sampleFields(), nil
	}), repo, &seqIDGenerator{})

	placeholders := svc.HandleFiles(context.Background(), testUploads(3))

	// Exactly N placeholders, in presented order, all processing
	require.Len(t, placeholders, 3)
	seen := make(map[string]bool)
	for _, p := range placeholders {
		assert.Equal(t, string(domain.StatusProcessing), p.Status)
		assert.Equal(t, domain.ProcessingSentinel, p.Date)
		assert.Equal(t, 0.0, p.TotalAmount)
		assert.Empty(t, p.Items)
		assert.False(t, seen[p.ID], "ids must be unique")
		seen[p.ID] = true
	}

	// Collection order is most-recently-uploaded first
	list := repo.List()
	require.Len(t, list, 3)
	assert.Equal(t, "inv-3", list[0].ID)
	assert.Equal(t, "inv-2", list[1].ID)
	assert.Equal(t, "inv-1", list[2].ID)

	assert.True(t, svc.Uploading())
	close(release)
	svc.Shutdown()
	assert.False(t, svc.Uploading())
}

func TestHandleFilesPatchesCompletedFields(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		return sampleFields(), nil
	}), repo, &seqIDGenerator{})

	svc.HandleFiles(context.Background(), testUploads(1))
	svc.Shutdown()

	inv, ok := repo.Get("inv-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusCompleted, inv.Status)
	assert.Equal(t, "2024/05/01", inv.Date)
	assert.Equal(t, "AB12345678", inv.Number)
	assert.Equal(t, "測試商店", inv.Vendor)
	assert.Equal(t, 150.0, inv.TotalAmount)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, domain.InvoiceItem{Name: "咖啡", Quantity: 1, Price: 150}, inv.Items[0])
}

func TestOneFailureDoesNotBlockTheBatch(t *testing.T) {
	repo := repository.NewMemoryRepository()
	var calls int
	var mu sync.Mutex
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			return nil, errors.New("remote rejected the image")
		}
		return sampleFields(), nil
	}), repo, &seqIDGenerator{})

	svc.HandleFiles(context.Background(), testUploads(2))
	svc.Shutdown()

	// Final order is [file2, file1]: each placeholder was unshifted
	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, "inv-2", list[0].ID)
	assert.Equal(t, domain.StatusCompleted, list[0].Status)
	assert.Equal(t, "inv-1", list[1].ID)
	assert.Equal(t, domain.StatusError, list[1].Status)

	// Errored record keeps its sentinel fields for manual editing
	assert.Equal(t, domain.ProcessingSentinel, list[1].Vendor)
}

func TestProcessingErrorWrapsExtractionFailure(t *testing.T) {
	extErr := &gemini.ExtractionError{Op: "generate_content", Err: errors.New("quota exceeded")}
	err := &ProcessingError{Op: "extract_invoice", Err: extErr}

	assert.Equal(t, "extract_invoice: gemini extraction error: generate_content: quota exceeded", err.Error())

	var unwrapped *gemini.ExtractionError
	require.ErrorAs(t, err, &unwrapped)
	assert.Equal(t, "generate_content", unwrapped.Op)
}

func TestExtractionFailureLoggedAsProcessingError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	repo := repository.NewMemoryRepository()
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		return nil, &gemini.ExtractionError{Op: "empty_response"}
	}), repo, &seqIDGenerator{})

	svc.HandleFiles(context.Background(), testUploads(1))
	svc.Shutdown()

	assert.Contains(t, buf.String(), "extract_invoice: gemini extraction error: empty_response")

	inv, ok := repo.Get("inv-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusError, inv.Status)
}

func TestExtractionRunsStrictlySequentially(t *testing.T) {
	repo := repository.NewMemoryRepository()
	var inFlight, maxInFlight int
	var mu sync.Mutex
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return sampleFields(), nil
	}), repo, &seqIDGenerator{})

	// Two overlapping batches still extract one file at a time
	svc.HandleFiles(context.Background(), testUploads(2))
	svc.HandleFiles(context.Background(), testUploads(2))
	svc.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, maxInFlight, "at most one extraction may be in flight")
}

func TestDeleteWhileExtractionInFlightDropsResult(t *testing.T) {
	repo := repository.NewMemoryRepository()
	started := make(chan struct{})
	release := make(chan struct{})
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		close(started)
		<-release
		return sampleFields(), nil
	}), repo, &seqIDGenerator{})

	placeholders := svc.HandleFiles(context.Background(), testUploads(1))
	require.Len(t, placeholders, 1)

	<-started
	require.True(t, svc.DeleteInvoice(placeholders[0].ID))
	close(release)
	svc.Shutdown()

	// The late result must not resurrect the deleted record
	assert.Equal(t, 0, repo.Len())
	_, ok := repo.Get(placeholders[0].ID)
	assert.False(t, ok)
}

func TestUpdateInvoiceReplacesEditableFieldsOnly(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		return sampleFields(), nil
	}), repo, &seqIDGenerator{})

	svc.HandleFiles(context.Background(), testUploads(1))
	svc.Shutdown()

	dto, ok := svc.UpdateInvoice("inv-1", &model.UpdateInvoiceRequest{
		Date:        "2024/05/01",
		Number:      "AB12345678",
		Vendor:      "測試商店",
		TotalAmount: 175,
		Items:       []model.InvoiceItemDTO{{Name: "咖啡", Quantity: 1, Price: 175}},
	})
	require.True(t, ok)
	assert.Equal(t, "inv-1", dto.ID)
	assert.Equal(t, string(domain.StatusCompleted), dto.Status)
	assert.Equal(t, 175.0, dto.TotalAmount)
}

func TestUpdateInvoiceUnknownID(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewProcessorService(nil, repo)

	_, ok := svc.UpdateInvoice("gone", &model.UpdateInvoiceRequest{})
	assert.False(t, ok)
}

func TestInvoiceImageServedFromUpload(t *testing.T) {
	repo := repository.NewMemoryRepository()
	release := make(chan struct{})
	svc := NewProcessorServiceWithDeps(extractorFunc(func(context.Context, []byte, string) (*domain.ExtractedFields, error) {
		<-release
		return sampleFields(), nil
	}), repo, &seqIDGenerator{})

	uploads := testUploads(1)
	placeholders := svc.HandleFiles(context.Background(), uploads)
	require.Len(t, placeholders, 1)
	assert.Equal(t, "/v1/invoices/inv-1/image", placeholders[0].ImageURL)

	data, contentType, ok := svc.InvoiceImage("inv-1")
	require.True(t, ok)
	assert.Equal(t, uploads[0].Data, data)
	assert.Equal(t, "image/jpeg", contentType)

	close(release)
	svc.Shutdown()
}
