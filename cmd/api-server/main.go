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

	"logoforge/internal/animation"
	"logoforge/internal/auth"
	"logoforge/internal/export"
	"logoforge/internal/feedback"
	"logoforge/internal/logos"
	"logoforge/internal/progress"
	"logoforge/pkg/database"
	"logoforge/pkg/utils"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	srvCfg := utils.LoadServerConfig()

	router := gin.Default()

	// avoid the "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Progress hub first so every later component can report into it.
	hub := progress.NewHub()
	router.GET("/ws", progress.WSHandler(hub))

	// Animation pipeline
	registry := animation.NewDefaultRegistry()
	animSvc := animation.NewService(registry, hub, srvCfg.CacheCapacity)
	animHandler := animation.NewHandler(animSvc)
	animHandler.RegisterRoutes(router.Group("/"))

	// Export
	exportStore, err := export.NewStore(srvCfg.ExportDir)
	if err != nil {
		log.Fatalf("export store: %v", err)
	}
	exportHandler := export.NewHandler(exportStore)
	exportHandler.RegisterRoutes(router.Group("/"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		pipeline, results := animSvc.CacheStats()
		c.JSON(http.StatusOK, gin.H{
			"db":             dbCfg.Path,
			"ws_clients":     stats.WSClients,
			"pipeline_cache": pipeline,
			"results_cache":  results,
		})
	})

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Protected routes
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(tokenSvc, authRepo))

	protected.GET("/users/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
		})
	})

	// Saved logo packages (protected)
	logoRepo := logos.NewRepo(db)
	logoHandler := logos.NewHandler(logoRepo)
	logoHandler.RegisterRoutes(protected)

	// Feedback (protected)
	fbRepo := feedback.NewRepo(db)
	fbHandler := feedback.NewHandler(fbRepo)
	fbHandler.RegisterRoutes(protected)

	httpSrv := &http.Server{
		Addr:    srvCfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", srvCfg.Addr)
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
