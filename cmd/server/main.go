package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"sirtis/internal/auth"
	"sirtis/internal/config"
	"sirtis/internal/handler"
	"sirtis/internal/middleware"
	"sirtis/internal/policy"
	"sirtis/internal/repository/postgres"
	"sirtis/internal/service"
	"sirtis/internal/service/reconcile"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier against the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	deptRepo := postgres.NewDepartmentRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	empRepo := postgres.NewEmployeeRepository(repoConfig)
	auditRepo := postgres.NewAuditRepository(repoConfig)
	folderRepo := postgres.NewFolderAggregateRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Load the reconciliation policy
	policyRegistry, err := policy.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load reconciliation policy: %v", err)
	}
	logger.Info("reconciliation policy loaded",
		"fallback_department", policyRegistry.FallbackDepartment(),
	)

	// Create services
	docService := service.NewDocumentService(docRepo, auditRepo, txManager, logger)
	deptService := service.NewDepartmentService(deptRepo, logger)
	folderService := service.NewFolderService(folderRepo, logger)

	snapshotLoader := reconcile.NewLoader(docRepo, deptRepo, userRepo, empRepo, auditRepo, logger)
	reconciler := reconcile.NewService(snapshotLoader, docRepo, folderRepo, txManager, policyRegistry, logger)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	deptHandler := handler.NewDepartmentHandler(deptService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	reconcileHandler := handler.NewReconcileHandler(reconciler, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)

	// Department routes
	mux.HandleFunc("GET /api/departments", deptHandler.ListDepartments)
	mux.HandleFunc("POST /api/departments", deptHandler.CreateDepartment)

	// Folder aggregate routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)

	// Admin routes
	mux.HandleFunc("POST /api/admin/documents/reconcile", middleware.RequireAdmin(reconcileHandler.Run))

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // reconciliation over a large corpus is slow
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
