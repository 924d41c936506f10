package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dyluth/pulse/internal/sink"
	"github.com/dyluth/pulse/pkg/board"
)

func main() {
	os.Exit(run())
}

// run contains the main logic and returns an exit code.
// This separation ensures deferred functions run before the process exits.
func run() int {
	// 1. Load environment configuration
	cfg, err := sink.LoadConfig()
	if err != nil {
		log.Printf("[ERROR] Configuration error: %v", err)
		return 1
	}

	// 2. Parse Redis URL
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("[ERROR] Invalid REDIS_URL: %v", err)
		return 1
	}

	// 3. Create board client
	client, err := board.NewClient(redisOpts, cfg.Facility)
	if err != nil {
		log.Printf("[ERROR] Failed to create board client: %v", err)
		return 1
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("[ERROR] Error closing board client: %v", err)
		}
	}()

	// 4. Verify Redis connectivity
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = client.Ping(pingCtx)
	cancel()
	if err != nil {
		log.Printf("[ERROR] Failed to connect to Redis: %v", err)
		return 1
	}
	log.Printf("[INFO] Connected to Redis for facility '%s'", cfg.Facility)

	// 5. Start the metrics server
	metrics := sink.NewCollector()
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERROR] Metrics server error: %v", err)
		}
	}()
	log.Printf("[INFO] Metrics server started on %s", cfg.MetricsAddr)

	// 6. Start the sink server
	server := sink.NewServer(client, metrics, cfg.Addr)
	server.Start()
	log.Printf("[INFO] Sink listening on %s", cfg.Addr)

	// 7. Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh
	log.Printf("[INFO] Received signal: %v", sig)

	// 8. Graceful shutdown, sink first so in-flight commits finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Sink shutdown error: %v", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Metrics shutdown error: %v", err)
	}

	log.Printf("[INFO] Shutdown complete")
	return 0
}
