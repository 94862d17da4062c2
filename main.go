package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stargrid/cli"
	"stargrid/config"
	"stargrid/database"
	"stargrid/handlers"
	"stargrid/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed static/*
var staticFiles embed.FS

func main() {
	// Load environment variables and parse CLI flags
	config.ParseFlags()

	logFile, err := setupLogging(config.Settings.LogFilePath)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Check if CLI mode is requested
	if config.Settings.CLIMode {
		mainCLI()
		return
	}

	log.Println("Stargrid starting up...")

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize services
	sessionTTL := time.Duration(config.Settings.SessionTTLHours) * time.Hour
	service.InitServices(database.DB, config.Settings.AdminPassword, sessionTTL)

	// Create the settings row up front so the first page load never races
	// initialization.
	if _, err := service.GlobalServices.Settings.Get(); err != nil {
		log.Printf("Warning: failed to initialize settings: %v", err)
	}

	// Sweep expired sessions in the background
	sweepDone := make(chan struct{})
	go sweepExpiredSessions(sweepDone)

	// Set Gin mode
	if config.Settings.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Direct Gin logs to the configured log file
	gin.DefaultWriter = log.Writer()
	gin.DefaultErrorWriter = log.Writer()
	gin.DisableConsoleColor()

	// Create router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Static file service using embedded FS
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create static file system: %v", err)
	}
	r.StaticFS("/web", http.FS(staticFS))

	// Uploaded media
	r.Static("/uploads", config.Settings.UploadDir)

	// Root path redirect
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/web/index.html")
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/login", handlers.Login)
		api.POST("/logout", handlers.Logout)
		api.GET("/auth/status", handlers.AuthStatus)

		// Settings routes
		api.GET("/settings", handlers.GetSettings)
		api.PUT("/settings", handlers.RequireAuth(), handlers.UpdateSettings)

		// Content routes
		api.GET("/content", handlers.ListContent)
		api.GET("/content/:day", handlers.GetContent)
		api.PUT("/content/:day", handlers.RequireAuth(), handlers.UpsertContent)
		api.DELETE("/content/:day", handlers.RequireAuth(), handlers.DeleteContent)

		// Operator accounts and media upload
		api.POST("/users", handlers.RequireAuth(), handlers.CreateUser)
		api.POST("/upload", handlers.RequireAuth(), handlers.UploadFile)

		// Health and metrics routes
		api.GET("/health", handlers.HealthCheck)
		api.GET("/metrics", handlers.GetMetrics)
	}

	// Create HTTP server
	addr := fmt.Sprintf("0.0.0.0:%d", config.Settings.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on http://127.0.0.1:%d", config.Settings.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for OS interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Received interrupt signal")

	log.Println("Stargrid shutting down...")

	close(sweepDone)

	// Close database connection
	if err := database.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	// Gracefully shut down HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// sweepExpiredSessions periodically deletes sessions past their expiry. Lazy
// purge on auth checks covers tokens that are presented; this catches the
// ones that never come back.
func sweepExpiredSessions(done <-chan struct{}) {
	interval := time.Duration(config.Settings.SessionSweepIntervalMinute) * time.Minute
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			n, err := service.GlobalServices.Session.CleanExpired()
			if err != nil {
				log.Printf("Session sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Session sweep removed %d expired session(s)", n)
			}
		}
	}
}

// mainCLI entrypoint for CLI (HTTP client mode)
func mainCLI() {
	log.SetFlags(log.Ldate | log.Ltime)

	serverURL := config.Settings.CLIServer

	fmt.Printf("Stargrid CLI - Connecting to %s\n", serverURL)

	cliInstance, err := cli.New(serverURL)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("\nTips:")
		fmt.Println("  1. Make sure the Stargrid server is running:")
		fmt.Println("     ./stargrid")
		fmt.Println("  2. Or specify a different server:")
		fmt.Printf("     ./stargrid --cli --server http://your-server:5000\n")
		os.Exit(1)
	}

	cliInstance.Start()
}
