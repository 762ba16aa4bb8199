package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sampleroom-api/internal/cache"
	"sampleroom-api/internal/config"
	"sampleroom-api/internal/handler"
	"sampleroom-api/internal/middleware"
	"sampleroom-api/internal/repository"
	"sampleroom-api/internal/router"
	"sampleroom-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Sampleroom API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Open primary store
	store, err := repository.Open(cfg.DB.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()
	log.Printf("SQLite store opened at %s", cfg.DB.Path)

	// Initialize audit repository based on config
	var auditRepo repository.AuditRepository
	switch cfg.AuditDB.Type {
	case "postgres", "postgresql":
		pgRepo, err := repository.NewPostgresAuditRepository(cfg.AuditDB.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL audit repository: %v", err)
		}
		defer pgRepo.Close()
		auditRepo = pgRepo
		log.Println("PostgreSQL audit repository initialized")
	case "mysql":
		myRepo, err := repository.NewMySQLAuditRepository(cfg.AuditDB.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL audit repository: %v", err)
		}
		defer myRepo.Close()
		auditRepo = myRepo
		log.Println("MySQL audit repository initialized")
	default: // sqlite
		sqliteRepo, err := repository.NewSQLiteAuditRepository(cfg.AuditDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite audit repository: %v", err)
		}
		defer sqliteRepo.Close()
		auditRepo = sqliteRepo
		log.Println("SQLite audit repository initialized")
	}

	// Initialize cache
	var c cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			memCache := cache.NewMemoryCache()
			defer memCache.Stop()
			c = memCache
		} else {
			defer redisCache.Close()
			c = redisCache
			log.Println("Redis cache initialized")
		}
	default: // memory
		memCache := cache.NewMemoryCache()
		defer memCache.Stop()
		c = memCache
	}

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	productionService := service.NewProductionService(store, auditService)
	sampleService := service.NewSampleService(store, store, store, auditService)
	inventoryService := service.NewInventoryService(store, store, auditService)
	teamService := service.NewTeamService(store, auditService)
	requestService := service.NewRequestService(store, store, store, auditService, c, cfg.Cache.TTL)
	commentService := service.NewCommentService(store, store, store, store, auditService, cfg.App.CommentReplyDepth)

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version, store, auditRepo)
	productionHandler := handler.NewProductionHandler(productionService, inventoryService)
	sampleHandler := handler.NewSampleHandler(sampleService, inventoryService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	teamHandler := handler.NewTeamHandler(teamService)
	requestHandler := handler.NewRequestHandler(requestService)
	commentHandler := handler.NewCommentHandler(commentService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Create router
	r := router.New(router.Config{
		Handler:           healthHandler,
		ProductionHandler: productionHandler,
		SampleHandler:     sampleHandler,
		InventoryHandler:  inventoryHandler,
		TeamHandler:       teamHandler,
		RequestHandler:    requestHandler,
		CommentHandler:    commentHandler,
		AuditHandler:      auditHandler,
		ActorMiddleware:   middleware.Actor(cfg.App.DefaultActorID),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
