package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"gonum.org/v1/plot/vg"

	greeks "github.com/jwaldner/greeksurface/greeks_lib"
	"github.com/jwaldner/greeksurface/internal/config"
	"github.com/jwaldner/greeksurface/internal/handlers"
	"github.com/jwaldner/greeksurface/internal/logger"
	"github.com/jwaldner/greeksurface/internal/render"
	"github.com/jwaldner/greeksurface/internal/surface"
)

func main() {
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("🚀 Greek surface server starting - Port: %s", cfg.Port)

	if logger.Level() == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - every request will be logged to %s\n", cfg.Logging.LogFile)
	}

	start := time.Now()
	s := surface.Demo()
	computeDuration := time.Since(start)

	rows, cols := s.Grid.Dims()
	logger.Info.Printf("📐 Surface computed in %v: %d tenors x %d prices, K=%.2f r=%.2f sigma=%.2f",
		computeDuration, rows, cols, s.Market.Strike, s.Market.Rate, s.Market.Volatility)

	opts := render.DefaultOptions()
	opts.Width = vg.Length(cfg.Render.WidthInches) * vg.Inch
	opts.Height = vg.Length(cfg.Render.HeightInches) * vg.Inch

	surfaceHandler, err := handlers.NewSurfaceHandler(s, computeDuration, render.New(opts), greeks.NewEngine())
	if err != nil {
		log.Fatalf("Failed to prepare surface: %v", err)
	}

	// Setup router
	r := mux.NewRouter()
	surfaceHandler.Register(r)
	r.Use(requestLogging)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The server stays up until interrupted, like a plot window waiting to be closed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("❌ Shutdown failed: %v", err)
		}
	}()

	fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed to start:", err)
	}
	logger.Always.Printf("👋 Server stopped")
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Verbose.Printf("🔍 %s %s took %v", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}
