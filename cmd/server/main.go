package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/cache"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/collab"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/config"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/database"
	apperrors "github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/errors"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/handler"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/payment"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/repository"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/risk"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/workflow"
)

func main() {
	configPath := flag.String("config", getEnv("CONFIG_PATH", "config.yaml"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	log.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("environment", cfg.Service.Environment).
		Msg("Starting PO Automation Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database is optional: without it payment plans and risk profiles
	// report UNAVAILABLE but the rest of the workflow still runs.
	var db *database.DB
	if cfg.Database.Host != "" {
		db, err = database.New(ctx, database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Database,
			SSLMode:  cfg.Database.SSLMode,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		log.Info().Msg("Database connection established")
	} else {
		log.Warn().Msg("No database configured; payment plans will be unavailable")
	}

	var poStore payment.POStore
	var history risk.HistoryStore
	var runs handler.RunRecorder
	if db != nil {
		poRepo := repository.NewPurchaseOrderRepository(db)
		poStore = poRepo
		history = poRepo
		runs = repository.NewWorkflowRunRepository(db, log)
	} else {
		poStore = unavailableStore{}
		history = unavailableStore{}
	}

	// Optional NATS connection for workflow events.
	var nc *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err = nats.Connect(cfg.NATS.URL,
			nats.RetryOnFailedConnect(true),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second),
		)
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable; workflow events disabled")
		} else {
			defer nc.Close()
			log.Info().Str("url", cfg.NATS.URL).Msg("NATS connection established")
		}
	}
	events := client.NewEventPublisher(nc, log)

	// Optional Redis cache for risk profiles.
	var profileCache payment.ProfileCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable; risk profile cache disabled")
		} else {
			defer rdb.Close()
			profileCache = cache.NewRiskProfileCache(rdb, cfg.Redis.TTL, log)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
		}
	}

	scorer := risk.NewScorer(history, log)
	planner := payment.NewPlanner(poStore, scorer, profileCache, log)

	suppliers, budgets, approvals, notifier, analyst, err := buildCollaborators(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize collaborators")
	}

	orchestrator := workflow.NewOrchestrator(
		suppliers, budgets, approvals, notifier, analyst, planner, events, log)

	httpHandler := handler.NewHTTPHandler(orchestrator, scorer, planner, runs, log)
	mux := http.NewServeMux()

	mux.HandleFunc("/health", httpHandler.Health)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/v1/purchase-orders/process", httpHandler.ProcessPurchaseOrder)
	mux.HandleFunc("/api/v1/suppliers/risk", httpHandler.GetSupplierRisk)
	mux.HandleFunc("/api/v1/payment-plans", httpHandler.GetPaymentPlan)
	mux.HandleFunc("/api/v1/payment-policy", httpHandler.GetPaymentPolicy)

	// Apply middleware
	var h http.Handler = mux
	h = handler.RequestID(h)
	h = handler.Logger(log)(h)
	h = handler.Recovery(log)(h)
	h = handler.CORS([]string{"*"})(h)
	h = handler.Timeout(30 * time.Second)(h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

// buildCollaborators wires each decision service: a remote HTTP client when a
// base URL is configured, the local static-data implementation otherwise.
// The analyst is optional and only present when a URL is configured.
func buildCollaborators(cfg *config.Config, log zerolog.Logger) (
	workflow.SupplierService,
	workflow.BudgetService,
	workflow.ApprovalService,
	workflow.NotificationService,
	workflow.Analyst,
	error,
) {
	var suppliers workflow.SupplierService
	if url := cfg.Collaborators.SupplierURL; url != "" {
		suppliers = client.NewSupplierClient(url)
	} else {
		dir, err := collab.NewSupplierDirectory(cfg.Data.Suppliers)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("load supplier directory: %w", err)
		}
		suppliers = dir
	}

	var budgets workflow.BudgetService
	if url := cfg.Collaborators.BudgetURL; url != "" {
		budgets = client.NewBudgetClient(url)
	} else {
		ledger, err := collab.NewBudgetLedger(cfg.Data.Budgets, log)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("load budget ledger: %w", err)
		}
		budgets = ledger
	}

	var approvals workflow.ApprovalService
	if url := cfg.Collaborators.ApprovalURL; url != "" {
		approvals = client.NewApprovalClient(url)
	} else {
		matrix, err := collab.NewApprovalMatrix(cfg.Data.ApprovalMatrix)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("load approval matrix: %w", err)
		}
		approvals = matrix
	}

	var notifier workflow.NotificationService
	if url := cfg.Collaborators.NotificationURL; url != "" {
		notifier = client.NewNotificationClient(url)
	} else {
		notifier = collab.NewNotifier(log)
	}

	var analyst workflow.Analyst
	if url := cfg.Collaborators.AnalysisURL; url != "" {
		analyst = client.NewAnalysisClient(url)
	}

	return suppliers, budgets, approvals, notifier, analyst, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && l != zerolog.NoLevel {
		level = l
	}

	log := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Logger().
		Level(level)

	if cfg.Service.Environment == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return log
}

// unavailableStore stands in for the purchase-order store when no database
// is configured. Every lookup reports UNAVAILABLE.
type unavailableStore struct{}

func (unavailableStore) GetHeader(context.Context, int64) (*payment.POHeader, error) {
	return nil, errUnavailable()
}
func (unavailableStore) LineTotal(context.Context, int64) (float64, error) { return 0, errUnavailable() }
func (unavailableStore) LatestPOID(context.Context, string) (int64, error) {
	return 0, errUnavailable()
}
func (unavailableStore) OrderedQuantity(context.Context, string) (float64, error) {
	return 0, errUnavailable()
}
func (unavailableStore) ReceivedQuantity(context.Context, string) (float64, error) {
	return 0, errUnavailable()
}
func (unavailableStore) DeliveryCounts(context.Context, string) (int64, int64, error) {
	return 0, 0, errUnavailable()
}
func (unavailableStore) QualityCounts(context.Context, string) (int64, int64, error) {
	return 0, 0, errUnavailable()
}
func (unavailableStore) InvoiceCounts(context.Context, string) (int64, int64, error) {
	return 0, 0, errUnavailable()
}
func (unavailableStore) PaymentCounts(context.Context, string) (int64, int64, error) {
	return 0, 0, errUnavailable()
}

func errUnavailable() error {
	return apperrors.New(apperrors.ErrCodeUnavailable, "purchase order database is not configured")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
