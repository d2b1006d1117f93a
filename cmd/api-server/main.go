package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"watchhub/internal/assistant"
	"watchhub/internal/catalog"
	"watchhub/internal/tracker"
	"watchhub/pkg/database"
	"watchhub/pkg/utils"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	cfg := utils.LoadServerConfig()

	svc := tracker.NewService(tracker.NewSQLiteStore(db))

	// Fetch the catalog once. A failed fetch is terminal for this load
	// attempt: no retry, the server comes up with an empty collection.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	items, err := catalog.NewLoader().Load(ctx, cfg.CatalogSource)
	cancel()
	if err != nil {
		log.Printf("[catalog] load failed, serving empty collection: %v", err)
		items = nil
	} else {
		log.Printf("[catalog] loaded %d items from %s", len(items), cfg.CatalogSource)
	}
	svc.Load(items)

	router := gin.Default()

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"db":     "ok",
			"items":  len(svc.Snapshot()),
		})
	})

	trackerHandler := tracker.NewHandler(svc)
	trackerHandler.RegisterRoutes(router.Group(""))

	asst := assistant.New(svc.Snapshot, nil, cfg.AssistantDelay)
	assistantHandler := assistant.NewHandler(asst)
	assistantHandler.RegisterRoutes(router.Group("/assistant"))

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
