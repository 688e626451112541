package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/knst/site-services/handlers"
	"github.com/knst/site-services/internal/config"
	contenthandler "github.com/knst/site-services/internal/content/handler"
	"github.com/knst/site-services/internal/content/provider"
	"github.com/knst/site-services/internal/content/repository"
	"github.com/knst/site-services/internal/database"
	"github.com/knst/site-services/internal/oidc"
	"github.com/knst/site-services/internal/sessions"
	"github.com/knst/site-services/internal/storage"
	"github.com/knst/site-services/internal/tokens"
	"github.com/knst/site-services/internal/uploads"
	"github.com/knst/site-services/pkg/logger"
	"github.com/knst/site-services/pkg/metrics"
	"github.com/knst/site-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// log level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v oidc=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Auth.OIDCIssuerURL != "")

	ctx := context.Background()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Connect to Redis early so the rate limiter, sessions and the token
	// blacklist can use it when configured.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rc.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			redisClient = rc
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-admin when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races; fall
	// back to the in-memory repository so the site still serves defaults.
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			mongoClient = nil
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
		}
	}

	var contentRepo repository.Repository
	if mongoClient != nil {
		col := mongoClient.Database(cfg.MongoDB.Database).Collection(repository.Collection)
		contentRepo = repository.NewMongoRepo(col)
	} else {
		logger.Warnf("MongoDB unavailable, serving content from memory (edits will not survive restarts)")
		contentRepo = repository.NewMemoryRepo()
	}

	prov := provider.New(contentRepo, cfg.MongoDB.Live)
	if err := prov.Start(ctx); err != nil {
		logger.Fatalf("failed to start content provider: %v", err)
	}
	defer prov.Stop()

	// MinIO image storage; without it the admin panel works but uploads 503.
	var pipeline *uploads.Pipeline
	minioCfg := storage.LoadMinIOConfig()
	if minioCfg.Endpoint != "" {
		store, err := storage.NewMinIOStorage(minioCfg)
		if err != nil {
			logger.Warnf("failed to initialize MinIO storage: %v", err)
		} else {
			pipeline = uploads.NewPipeline(store, prov, cfg.Upload.MaxImageBytes)
			logger.Infof("image uploads enabled (bucket=%s)", minioCfg.Bucket)
		}
	} else {
		logger.Warnf("MinIO not configured, image uploads disabled")
	}

	// Admin token verification: external OIDC issuer when configured,
	// otherwise locally issued HMAC tokens from the password login.
	var verifier middleware.Verifier
	if cfg.Auth.OIDCIssuerURL != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.Auth.OIDCIssuerURL, cfg.Auth.OIDCClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	} else if cfg.Auth.JWTSecret != "" {
		verifier = tokens.NewHMACVerifier(cfg.Auth.JWTSecret)
	}
	if verifier == nil && strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
		logger.Warn("enabling insecure token verifier (integration mode)")
		verifier = oidc.NewInsecureVerifier()
	}

	// Refresh sessions: Redis when available, Mongo otherwise.
	var sessionsSvc *sessions.Service
	if redisClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, ""))
	} else if mongoClient != nil {
		col := mongoClient.Database(cfg.MongoDB.Database).Collection("admin_sessions")
		sessionsSvc = sessions.NewService(sessions.NewMongoRepository(col))
	}
	blacklist := sessions.NewBlacklist(redisClient)

	// Public content API
	contenthandler.RegisterContentRoutes(r, prov)

	// Admin surface: login plus the protected edit endpoints
	admin := r.Group("/api/admin")
	if sessionsSvc != nil {
		handlers.NewAuthHandler(cfg, sessionsSvc, blacklist).Register(admin)
	} else {
		logger.Warnf("auth handlers not registered because no session store is available")
	}
	if verifier != nil {
		protected := admin.Group("/")
		protected.Use(middleware.AuthMiddleware(verifier, blacklist.IsRevoked))
		contenthandler.RegisterAdminRoutes(protected, prov, pipeline)
	} else {
		logger.Warnf("admin edit endpoints not registered because no token verifier is configured")
	}

	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the content provider finished its initial load
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["content"] = !prov.Loading()
		if prov.Loading() {
			ready = false
		}
		deps["mongo"] = mongoClient != nil
		deps["storage"] = pipeline != nil
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if redisClient == nil {
				ready = false
			}
		}

		status := gin.H{"deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["status"] = "ready"
		c.JSON(http.StatusOK, status)
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting site service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
