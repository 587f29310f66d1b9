// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chatcart/crm-platform/internal/config"
	"github.com/chatcart/crm-platform/internal/events"
	"github.com/chatcart/crm-platform/internal/handler"
	"github.com/chatcart/crm-platform/internal/intent"
	"github.com/chatcart/crm-platform/internal/middleware"
	"github.com/chatcart/crm-platform/internal/service"
	"github.com/chatcart/crm-platform/internal/store"
	"github.com/chatcart/crm-platform/internal/upstream"
	"github.com/chatcart/crm-platform/pkg/logger"
	"github.com/chatcart/crm-platform/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "crm-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS. Event publishing is best-effort: a missing broker
	// degrades the audit stream, never the CRM.
	var natsClient *events.Client
	var publisher *events.Publisher
	if cfg.NATSEnabled {
		natsClient, err = events.Connect(ctx, events.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("NATS unavailable, audit events disabled", zap.Error(err))
		} else {
			defer natsClient.Close()
			publisher = events.NewPublisher(natsClient)
			if err := publisher.EnsureStream(ctx); err != nil {
				log.Warn("failed to ensure audit stream", zap.Error(err))
			}
		}
	}

	// Initialize intent classifier
	classifier, cerr := intent.Select(intent.Provider(cfg.IntentProvider), cfg.AnthropicAPIKey, cfg.OpenAIAPIKey)
	if cerr != nil {
		log.Warn("failed to create intent classifier, classification disabled", zap.Error(cerr))
		classifier = nil
	}

	// Upstream API client
	api := upstream.New(cfg.UpstreamURL, upstream.StaticToken(cfg.UpstreamToken), log)

	// Initialize stores and services
	orderSvc := service.NewOrderService(store.NewOrders(), api, publisher, log)
	leadSvc := service.NewLeadService(store.NewLeads(), api, log)
	conversationSvc := service.NewConversationService(store.NewConversations(), api, classifier, log)
	contactSvc := service.NewContactService(store.NewContacts(), api, log)
	teamSvc := service.NewTeamService(api, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(natsClient)
	orderHandler := handler.NewOrderHandler(orderSvc, log)
	leadHandler := handler.NewLeadHandler(leadSvc, log)
	conversationHandler := handler.NewConversationHandler(conversationSvc, log)
	contactHandler := handler.NewContactHandler(contactSvc, log)
	teamHandler := handler.NewTeamHandler(teamSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		// Orders
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.List)
			r.Post("/", orderHandler.Create)
			r.Post("/refresh", orderHandler.Refresh)
			r.Get("/metrics", orderHandler.Metrics)
			r.Get("/statuses", orderHandler.Statuses)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(middleware.RequireValidID)
				r.Get("/", orderHandler.Get)
				r.Patch("/status", orderHandler.Transition)
				r.Patch("/payment", orderHandler.SetPayment)
				r.Post("/refund", orderHandler.Refund)
				r.Patch("/assign", orderHandler.Assign)
				r.Patch("/archive", orderHandler.Archive)
				r.Delete("/", orderHandler.Delete)
			})
		})

		// Leads
		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.List)
			r.Post("/", leadHandler.Create)
			r.Post("/refresh", leadHandler.Refresh)
			r.Get("/statuses", leadHandler.Statuses)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(middleware.RequireValidID)
				r.Get("/", leadHandler.Get)
				r.Patch("/status", leadHandler.Transition)
				r.Patch("/assign", leadHandler.Assign)
				r.Patch("/notes", leadHandler.UpdateNotes)
			})
		})

		// Conversations
		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", conversationHandler.List)
			r.Post("/refresh", conversationHandler.Refresh)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(middleware.RequireValidID)
				r.Get("/", conversationHandler.Get)
				r.Patch("/status", conversationHandler.SetStatus)
				r.Patch("/assign", conversationHandler.Assign)
				r.Patch("/assign-to-me", conversationHandler.AssignToMe)
				r.Patch("/vip", conversationHandler.SetVIP)
				r.Post("/classify", conversationHandler.Classify)
			})
		})

		// Contacts
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", contactHandler.List)
			r.Post("/refresh", contactHandler.Refresh)
			r.With(middleware.RequireValidID).Get("/{id}", contactHandler.Get)
		})

		// Team
		r.Route("/team", func(r chi.Router) {
			r.Get("/workspace", teamHandler.Workspace)
			r.Get("/members", teamHandler.Members)
			r.Post("/refresh", teamHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				r.Post("/members", teamHandler.Invite)
				r.With(middleware.RequireValidID).Patch("/members/{id}/role", teamHandler.UpdateRole)
				r.With(middleware.RequireValidID).Delete("/members/{id}", teamHandler.Remove)
			})
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Warm the caches before accepting traffic; failures are non-fatal
	// since each list can be refreshed on demand.
	warmCtx, warmCancel := context.WithTimeout(ctx, 30*time.Second)
	if err := orderSvc.Refresh(warmCtx); err != nil {
		log.Warn("initial order fetch failed", zap.Error(err))
	}
	if err := leadSvc.Refresh(warmCtx); err != nil {
		log.Warn("initial lead fetch failed", zap.Error(err))
	}
	if err := conversationSvc.Refresh(warmCtx); err != nil {
		log.Warn("initial conversation fetch failed", zap.Error(err))
	}
	if err := contactSvc.Refresh(warmCtx); err != nil {
		log.Warn("initial contact fetch failed", zap.Error(err))
	}
	warmCancel()

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
