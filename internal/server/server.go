package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/smartinvoice/invoice-assistant-service/internal/config"
	"github.com/smartinvoice/invoice-assistant-service/internal/handler"
	"github.com/smartinvoice/invoice-assistant-service/internal/middleware"
	"github.com/smartinvoice/invoice-assistant-service/internal/service"
	"github.com/smartinvoice/invoice-assistant-service/internal/web"
)

// Server represents the HTTP server for the invoice assistant
type Server struct {
	router         *gin.Engine
	httpServer     *http.Server
	invoiceHandler *handler.InvoiceHandler
	invoiceService service.InvoiceServicer
	config         *config.Config
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, invoiceHandler *handler.InvoiceHandler) *Server {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestResponseLogger(middleware.LoggerConfig{
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
	}))

	// Create server
	server := &Server{
		router:         router,
		invoiceHandler: invoiceHandler,
		config:         cfg,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	// Configure routes
	server.setupRoutes()

	return server
}

// SetInvoiceService sets the invoice service for clean shutdown
func (s *Server) SetInvoiceService(invoiceService service.InvoiceServicer) {
	s.invoiceService = invoiceService
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	// Browser interface
	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
	})

	// Health check endpoint
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// API documentation endpoints
	// Access the Swagger UI at http://localhost:8080/api-docs/index.html
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
	s.router.GET("/api-docs/*any", swaggerHandler)

	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	// Invoice API
	s.invoiceHandler.RegisterRoutes(s.router)
}

// Start begins listening for requests and handles graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("Server listening on port %d", s.config.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down server...")

	// Let in-flight extraction batches resolve before closing
	if s.invoiceService != nil {
		s.invoiceService.Shutdown()
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited gracefully")
	return nil
}
