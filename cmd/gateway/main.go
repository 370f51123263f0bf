package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/messmate/mess-client/internal/adapters/api"
	"github.com/messmate/mess-client/internal/adapters/handler"
	"github.com/messmate/mess-client/internal/adapters/messaging"
	"github.com/messmate/mess-client/internal/adapters/middleware"
	"github.com/messmate/mess-client/internal/adapters/storage"
	"github.com/messmate/mess-client/internal/config"
	"github.com/messmate/mess-client/internal/core/services"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokens, redisClient, err := storage.SelectTokenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to set up token store: %v", err)
	}
	if redisClient != nil {
		log.Println("Using Redis token store")
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, tokens)
	notices := services.NewNotifier(cfg.NoticeTTL)
	session := services.NewSessionService(client, tokens).WithTokenExpiry(api.TokenExpiry)

	// Optional session event auditing through RabbitMQ.
	var relay *messaging.Relay
	if cfg.RabbitMQURL != "" {
		broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.SessionEventQueue)
		if err != nil {
			log.Printf("WARNING - failed to connect to RabbitMQ, auditing disabled: %v", err)
		} else {
			defer broker.Close()
			relay = messaging.NewRelay(broker, 64)
			session.WithEvents(relay, cfg.DeviceID)
			go func() {
				if err := relay.Start(ctx); err != nil && err != context.Canceled {
					log.Printf("event relay stopped: %v", err)
				}
			}()
		}
	}

	// A 401 from anywhere in the app invalidates the session. Logout is
	// idempotent with the client's own token clearing.
	client.SetOnUnauthorized(session.Logout)

	// The guard holds navigation as loading until this settles.
	go session.Initialize(ctx)

	guard := middleware.NewGuard(session, notices)
	sessionHandler := handler.NewSessionHandler(session, notices, client)
	viewHandler := handler.NewViewHandler(session, notices, client)
	healthHandler := handler.NewHealthHandler(client, redisClient, relay)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	r.Get("/healthz", healthHandler.Health)
	r.Get("/readyz", healthHandler.Ready)
	r.Get("/livez", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())

	// Entry points: authenticated users are bounced to the dashboard.
	r.Group(func(r chi.Router) {
		r.Use(guard.Entry)
		r.Post("/login", sessionHandler.Login)
		r.Post("/register", sessionHandler.Register)
		r.Post("/register/verify-otp", sessionHandler.VerifyOTP)
		r.Post("/register/resend-otp", sessionHandler.ResendOTP)
	})

	r.Post("/logout", sessionHandler.Logout)
	r.Get("/notices", sessionHandler.Notices)
	r.Delete("/notices/{id}", sessionHandler.DismissNotice)

	// Everything below requires a fully onboarded identity.
	r.Group(func(r chi.Router) {
		r.Use(guard.Protect)
		r.Get("/dashboard", viewHandler.Dashboard)
		r.Get("/subscriptions", viewHandler.Subscriptions)
		r.Post("/subscriptions", viewHandler.Subscribe)
		r.Get("/plans", viewHandler.Plans)
		r.Get("/payments", viewHandler.Payments)
		r.Get("/leaves", viewHandler.Leaves)
		r.Post("/leaves", viewHandler.RequestLeave)
		r.Get("/feedback", viewHandler.Feedback)
		r.Post("/feedback", viewHandler.SubmitFeedback)
		r.Get("/notifications", viewHandler.NotificationLogs)
		r.Get("/profile", viewHandler.Profile)
		r.Post("/profile", viewHandler.CompleteProfile)
	})

	server := &http.Server{Addr: cfg.GatewayAddr, Handler: r}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down gateway...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting gateway on %s (backend %s)", cfg.GatewayAddr, cfg.APIBaseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not start gateway: %s\n", err)
	}
}
