package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"freelancer-dao/internal/auth"
	"freelancer-dao/internal/config"
	"freelancer-dao/internal/database"
	"freelancer-dao/internal/handlers"
	"freelancer-dao/internal/jobs"
	"freelancer-dao/internal/ledger"
	"freelancer-dao/internal/repository"
	"freelancer-dao/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Core collaborators
	repo := repository.NewRepository(db)
	fundLedger := ledger.NewLedger(db)
	locks := services.NewKeyedMutex()

	// Initialize services
	authService := services.NewAuthService(db)
	adminService := services.NewAdminService(db)
	eventService := services.NewEventService(db)
	paramsService := services.NewParamsService(db, adminService, eventService)
	stakeService := services.NewStakeService(db, repo, fundLedger, paramsService, eventService, locks)
	projectService := services.NewProjectService(db, repo, fundLedger, eventService)
	voteService := services.NewVoteService(db, repo, paramsService, eventService, locks)
	statsService := services.NewStatsService(db)

	// Seed the first protocol parameter version if none exists
	if err := paramsService.Seed(
		cfg.Protocol.FeeBasisPoints,
		cfg.Protocol.MinimumStake,
		cfg.Protocol.VotingPeriodSeconds,
	); err != nil {
		log.Fatalf("Failed to seed protocol params: %v", err)
	}

	// Platform fees settle into a dedicated account
	feeSink, err := authService.EnsureAccount(context.Background(), cfg.App.FeeSinkWallet, "Platform Fee Sink")
	if err != nil {
		log.Fatalf("Failed to provision fee sink account: %v", err)
	}

	settlementService := services.NewSettlementService(
		db, repo, fundLedger, paramsService, eventService, locks, feeSink.ID,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	stakeHandler := handlers.NewStakeHandler(stakeService)
	projectHandler := handlers.NewProjectHandler(projectService, settlementService)
	voteHandler := handlers.NewVoteHandler(voteService)
	ledgerHandler := handlers.NewLedgerHandler(fundLedger)
	adminHandler := handlers.NewAdminHandler(adminService, paramsService, statsService, eventService)

	// Start assignment sweeper job
	sweeper := jobs.NewAssignmentSweeper(
		repo,
		voteService,
		paramsService,
		time.Duration(cfg.Protocol.SweepIntervalSec)*time.Second,
	)
	go sweeper.Start()
	defer sweeper.Stop()
	log.Println("Assignment sweeper job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/wallet", authHandler.WalletLogin)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public read routes
	router.GET("/api/params", adminHandler.GetParams)
	router.GET("/api/projects", projectHandler.ListProjects)
	router.GET("/api/projects/:id", projectHandler.GetProject)
	router.GET("/api/projects/:id/votes", voteHandler.GetVotes)
	router.GET("/api/projects/:id/tally", voteHandler.GetTally)
	router.GET("/api/pools/:category", stakeHandler.GetPool)
	router.GET("/api/freelancers/:id", stakeHandler.GetFreelancer)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Ledger endpoints
		api.POST("/ledger/deposit", ledgerHandler.Deposit)
		api.POST("/ledger/withdraw", ledgerHandler.Withdraw)
		api.GET("/ledger/balance", ledgerHandler.GetBalance)
		api.GET("/ledger/entries", ledgerHandler.GetEntries)

		// Stake endpoints
		api.POST("/stakes", stakeHandler.PlaceStake)
		api.GET("/stakes", stakeHandler.GetMyProfile)

		// Project endpoints
		api.POST("/projects", projectHandler.CreateProject)
		api.POST("/projects/:id/complete", projectHandler.CompleteProject)

		// Vote endpoints
		api.POST("/projects/:id/votes", voteHandler.CastVote)

		// Event endpoints
		api.GET("/events", adminHandler.GetEvents)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(adminHandler.AdminMiddleware())
	{
		admin.PUT("/params/fee", adminHandler.SetFee)
		admin.PUT("/params/minimum-stake", adminHandler.SetMinimumStake)
		admin.PUT("/params/voting-period", adminHandler.SetVotingPeriod)
		admin.POST("/promote/:id", adminHandler.PromoteAdmin)
		admin.GET("/logs", adminHandler.GetAdminLogs)
		admin.GET("/stats", adminHandler.GetStats)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)
		log.Printf("Wallet auth: POST http://localhost:%s/auth/wallet", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
