package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"class-timetable/internal/api/handlers"
	"class-timetable/internal/api/router"
	"class-timetable/internal/config"
	"class-timetable/internal/infrastructure/cache"
	"class-timetable/internal/service"
	"class-timetable/pkg/jwt"
	"class-timetable/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	port        string
	autoMigrate bool
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long: `Start the timetable API server.
The server connects to the configured database and cache, optionally
applies pending migrations, and serves the REST API until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Flags for server command
	serverCmd.Flags().StringVarP(&port, "port", "p", "", "Port for the server to listen on (overrides config)")
	serverCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Apply pending migrations on startup")
}

func startServer() {
	cfg := config.Get()

	// Override port if flag is provided
	if port != "" {
		cfg.Server.Port = port
	}

	ctx := context.Background()

	be, err := openBackend(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer be.Close()

	if autoMigrate {
		applied, err := be.migrator.RunMigrations(ctx)
		if err != nil {
			logger.Fatal("Migration failed: %v", err)
		}
		logger.Info("Applied %d migrations", applied)
	}

	cacheService, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Fatal("Failed to create cache: %v", err)
	}
	defer cacheService.Close()

	if err := cacheService.Health(ctx); err != nil {
		// The cache is optional; requests fall through to the database
		logger.Warn("Cache is not reachable: %v", err)
	}

	stores := be.stores
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenDuration())
	userService := service.NewUserService(stores.Users, cfg.Auth.BcryptCost)

	r := router.NewRouter(router.Dependencies{
		Version:  cfg.App.Version,
		Schedule: service.NewScheduleService(stores.Enrollments, stores.Lectures, stores.TimeSlots, cacheService),
		Catalog:  service.NewCatalogService(stores.Lectures, stores.TimeSlots),
		Auth:     service.NewAuthService(userService, tokens),
		Users:    userService,
		Friends:  service.NewFriendService(stores.Users, stores.Friends),
		Comments: service.NewCommentService(stores.Lectures, stores.Comments),
		HealthChecks: map[string]handlers.Checker{
			"database": stores.Ping,
			"cache":    cacheService.Health,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:           net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
