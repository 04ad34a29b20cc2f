package main

import (
	"context"
	"fmt"
	"log"

	_ "github.com/smartinvoice/invoice-assistant-service/docs"
	"github.com/smartinvoice/invoice-assistant-service/internal/config"
	"github.com/smartinvoice/invoice-assistant-service/internal/gemini"
	"github.com/smartinvoice/invoice-assistant-service/internal/handler"
	"github.com/smartinvoice/invoice-assistant-service/internal/repository"
	"github.com/smartinvoice/invoice-assistant-service/internal/server"
	"github.com/smartinvoice/invoice-assistant-service/internal/service"
)

// @title Invoice Assistant API
// @version 1.0
// @description Upload invoice photos, extract their fields with a multimodal model and export the results.
// @BasePath /
func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Gemini client for field extraction
	extractor, err := gemini.NewClient(context.Background(), &gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer extractor.Close()

	// Initialize the in-memory invoice collection. Nothing survives a
	// restart: all state is session-scoped.
	log.Println("Initializing invoice collection...")
	repo := repository.NewMemoryRepository()

	// Create the invoice processor service
	log.Println("Creating invoice processor service...")
	processorService := service.NewProcessorService(extractor, repo)

	// Create handler
	invoiceHandler := handler.NewInvoiceHandler(processorService, cfg.MaxFileSize)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg, invoiceHandler)

	// Set processor service in the server for clean shutdown
	appServer.SetInvoiceService(processorService)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
