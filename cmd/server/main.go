package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"esther-house/internal/config"
	"esther-house/internal/handlers"
	"esther-house/internal/middleware"
	"esther-house/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Initialize services
	ticketing := services.NewETicketsClient(services.ETicketsConfig{
		APIKey:   cfg.Ticketing.APIKey,
		SalesKey: cfg.Ticketing.SalesKey,
		BaseURL:  cfg.Ticketing.BaseURL,
		Language: cfg.Ticketing.Language,
		Currency: cfg.Ticketing.Currency,
	})

	catalogService := services.NewEventCatalogService(ticketing)
	checkoutService := services.NewCheckoutService(ticketing, cfg.Server.BaseURL)
	verificationService := services.NewVerificationService(ticketing)

	emailService := services.NewEmailService(services.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     strconv.Itoa(cfg.Email.SMTPPort),
		SMTPUsername: cfg.Email.SMTPUser,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
	})

	newsletterService := services.NewNewsletterClient(services.NewsletterConfig{
		APIToken: cfg.Newsletter.APIToken,
		DomainID: cfg.Newsletter.DomainID,
		BaseURL:  cfg.Newsletter.BaseURL,
	})

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(catalogService)
	cartHandler := handlers.NewCartHandler(sessionStore)
	orderHandler := handlers.NewOrderHandler(checkoutService, verificationService, sessionStore)
	contactHandler := handlers.NewContactHandler(emailService, newsletterService)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Locale)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", eventHandler.ListEvents)
		r.Get("/events/{eventID}", eventHandler.GetEvent)
		r.Get("/events/{eventID}/zones", eventHandler.GetEventZones)

		r.Get("/cart", cartHandler.GetCart)
		r.Delete("/cart", cartHandler.ClearCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items/{categoryID}", cartHandler.UpdateItem)
		r.Delete("/cart/items/{categoryID}", cartHandler.RemoveItem)

		r.Post("/orders", orderHandler.CreateOrder)
		r.Get("/orders/{orderID}/verify", orderHandler.VerifyOrder)
		r.Post("/orders/{orderID}/send-tickets", orderHandler.SendTickets)

		r.Post("/contact", contactHandler.Contact)
		r.Post("/booking", contactHandler.Booking)
		r.Post("/newsletter", contactHandler.Newsletter)
	})

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
