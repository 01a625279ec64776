package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jaajung-kjs/digital-sub000/internal/asset"
	"github.com/jaajung-kjs/digital-sub000/internal/auth"
	"github.com/jaajung-kjs/digital-sub000/internal/config"
	"github.com/jaajung-kjs/digital-sub000/internal/db"
	"github.com/jaajung-kjs/digital-sub000/internal/export"
	"github.com/jaajung-kjs/digital-sub000/internal/live"
	mw "github.com/jaajung-kjs/digital-sub000/internal/middleware"
	"github.com/jaajung-kjs/digital-sub000/internal/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		slog.Error("apply schema", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	hub := live.NewHub()
	go hub.Run()

	planService := server.NewService(server.NewStore(pool))
	planHandler := server.NewHandler(planService, hub.BroadcastPlanUpdated)

	assetHandler := asset.NewHandler(cfg.AssetDir)
	exportHandler := export.NewHandler()

	r := mux.NewRouter()

	// Global middleware. CORS wraps outside the router so preflight requests
	// get answered even when no route matches the OPTIONS method.
	r.Use(mw.Recovery)
	r.Use(mw.Logger)

	// Auth routes (public)
	r.HandleFunc("/api/v1/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/v1/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Rack photos (public)
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Stateless export: the client posts the plan it holds, saved or not
	r.HandleFunc("/export/svg", exportHandler.ExportSVG).Methods("POST")

	// Protected API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authService.Middleware)

	api.HandleFunc("/floors/{floorId}/plan", planHandler.GetFloorPlan).Methods("GET")
	api.HandleFunc("/floors/{floorId}/plan", planHandler.CreateFloorPlan).Methods("POST")
	api.HandleFunc("/plans/{planId}", planHandler.UpdatePlan).Methods("PUT")
	api.HandleFunc("/plans/{planId}", planHandler.DeletePlan).Methods("DELETE")
	api.HandleFunc("/plans/{planId}/export/svg", planHandler.ExportSVG).Methods("GET")

	// WebSocket endpoint for save notifications
	patterns := originPatterns(cfg.AllowedOrigins)
	r.HandleFunc("/ws/plans/{planId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, planService, patterns)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mw.CORS(cfg.AllowedOrigins)(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// handleWebSocket upgrades a watcher connection. Browsers cannot set an
// Authorization header on websocket dials, so the token travels as a query
// parameter.
func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *live.Hub, authSvc *auth.Service, plans *server.Service, originPatterns []string) {
	planID := mux.Vars(r)["planId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	if _, err := plans.GetByID(r.Context(), planID); err != nil {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := live.NewClient(hub, conn, userID, planID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes off the configured origins; the websocket
// library matches against host patterns, not URLs.
func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return patterns
}
