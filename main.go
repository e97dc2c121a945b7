// flip-weather is a weather-tracking web service: city search, current
// conditions, and per-user favorite cities behind cookie-based sessions.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/ashishjangde/flip-weather/auth"
	"github.com/ashishjangde/flip-weather/config"
	"github.com/ashishjangde/flip-weather/db"
	"github.com/ashishjangde/flip-weather/favorites"
	"github.com/ashishjangde/flip-weather/weather"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run holds the real startup and shutdown sequence. Returning an error
// instead of calling log.Fatal in place lets the deferred teardown (the
// database pool in particular) run on every failure path.
func run() error {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := db.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database pool: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.DB.URL, "./migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	weatherService, err := weather.NewService()
	if err != nil {
		return fmt.Errorf("failed to load weather data: %w", err)
	}

	userStore := auth.NewPostgresUserStore(pool)
	tokenService := auth.NewTokenService(cfg.Auth)
	authService := auth.NewAuthService(userStore, tokenService)
	resolver := auth.NewResolver(userStore, tokenService)
	authHandlers := auth.NewHandlers(authService, resolver, cfg.Auth.CookieSecure)

	favoriteStore := favorites.NewPostgresStore(pool)
	favoriteHandler := favorites.NewHandler(favoriteStore)

	weatherHandler := weather.NewHandler(weatherService)

	gatekeeper := auth.NewGatekeeper(auth.DefaultProtectedPrefixes)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// The gatekeeper runs ahead of routing: it cheaply rejects protected
	// paths carrying no plausibly-shaped token, without touching the
	// database. The authoritative check stays inside the handler chain.
	r.Use(gatekeeper.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authHandlers.RegisterRoutes(r)
		})
		r.Route("/favorites", func(r chi.Router) {
			r.Use(auth.RequireUser(resolver))
			favoriteHandler.RegisterRoutes(r)
		})
		weatherHandler.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Println("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("server stopped")
	return nil
}
