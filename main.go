package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apirest "socialnet/api/rest"
	"socialnet/api/sse"
	"socialnet/audit"
	"socialnet/auth"
	"socialnet/cache"
	"socialnet/config"
	dbadapter "socialnet/db"
	"socialnet/event"
	"socialnet/feed"
	"socialnet/graph"
	mw "socialnet/middleware"
	"socialnet/model"
	"socialnet/repository"
	"socialnet/scheduler"
	"socialnet/social"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	if cfg.Security.JWTSecret == "" {
		logger.Warn("security.jwt_secret is not set; tokens are signed with an empty key")
	}

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("DB initialized")

	// ---- Cache / PubSub ----
	cacheConfig := cache.CacheConfig{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		LocalGCInterval: cfg.Cache.LocalGCInterval,
		LocalPubSubBuf:  cfg.Cache.LocalPubSubBuf,
	}
	c, err := cache.NewCache(cacheConfig)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	pubsub, err := cache.NewPubSub(cacheConfig)
	if err != nil {
		log.Fatalf("pubsub: %v", err)
	}
	logger.Info("Cache initialized")

	// ---- Notification bus and observers ----
	bus := event.NewBus()

	recorder := audit.NewRecorder(db, logger)
	bus.Subscribe(recorder)
	defer recorder.Stop(context.Background())

	bridge := feed.NewBridge(pubsub, logger)
	bus.Subscribe(bridge)

	// ---- Service ----
	svc := social.NewService(social.Config{
		Users:    repository.NewUsers(db),
		Friends:  repository.NewFriendships(db),
		Requests: repository.NewFriendRequests(db),
		Messages: repository.NewMessages(db),
		Hasher:   auth.NewBcryptHasher(cfg.Security.BcryptCost),
		Bus:      bus,
		Logger:   logger,
		Graph:    graph.Options{MaxExhaustiveNodes: cfg.Graph.MaxExhaustiveNodes},
	})

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))

	// Health check
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	// ---- REST API routes ----
	authH := apirest.NewAuthHandler(svc, c, cfg.Security)
	userH := apirest.NewUserHandler(svc)
	friendH := apirest.NewFriendHandler(svc)
	requestH := apirest.NewRequestHandler(svc)
	messageH := apirest.NewMessageHandler(svc)
	analyticsH := apirest.NewAnalyticsHandler(svc, c, logger)

	sched.AddTicker("community_snapshot", cfg.Graph.SnapshotInterval, analyticsH.Refresh)

	api := r.Group("/api")
	{
		authG := api.Group("/auth")
		authG.POST("/signup", authH.Signup)
		authG.POST("/login", authH.Login)
		authG.POST("/logout", mw.Auth(cfg.Security, c), authH.Logout)
		authG.POST("/refresh", mw.Auth(cfg.Security, c), authH.Refresh)

		usersG := api.Group("/users")
		usersG.Use(mw.Auth(cfg.Security, c))
		usersG.GET("", userH.List)
		usersG.GET("/:id", userH.Get)
		usersG.PUT("/me", userH.UpdateMe)
		usersG.DELETE("/me", userH.DeleteMe)

		friendsG := api.Group("/friends")
		friendsG.Use(mw.Auth(cfg.Security, c))
		friendsG.GET("", friendH.List)
		friendsG.GET("/from-month/:month", friendH.FromMonth)
		friendsG.DELETE("/:id", friendH.Remove)

		requestsG := api.Group("/requests")
		requestsG.Use(mw.Auth(cfg.Security, c))
		requestsG.POST("", requestH.Send)
		requestsG.GET("/pending", requestH.Pending)
		requestsG.POST("/accept", requestH.Accept)
		requestsG.POST("/reject", requestH.Reject)

		messagesG := api.Group("/messages")
		messagesG.Use(mw.Auth(cfg.Security, c))
		messagesG.POST("", messageH.Send)
		messagesG.GET("/with/:id", messageH.Conversation)

		analyticsG := api.Group("/analytics")
		analyticsG.Use(mw.Auth(cfg.Security, c))
		analyticsG.GET("/communities", analyticsH.Communities)
		analyticsG.GET("/sociable", analyticsH.Sociable)
	}

	// ---- SSE ----
	sseH := sse.NewHandler(pubsub, c, cfg.Security, logger)
	r.GET("/sse", sseH.ServeSSE)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
