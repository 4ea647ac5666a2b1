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

	"github.com/Sriramnat100/resumeoptimizer-sub000/handlers"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/ai"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/config"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/conversation"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/devbackend"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/tokens"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/metrics"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.SetJSON(cfg.Log.JSON)
	logger.Infof("config loaded: gemini=%v anthropic=%v redis=%v", cfg.AI.GeminiAPIKey != "", cfg.AI.AnthropicAPIKey != "", cfg.Redis.Host != "")

	r := gin.New()

	// Permissive CORS for the browser client in development.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// conversation memory: Redis when reachable, otherwise process memory
	var repo conversation.Repository
	if rdb != nil {
		repo = conversation.NewRedisRepository(rdb, cfg.Conversation.KeyPrefix, cfg.Conversation.TTL)
	} else {
		repo = conversation.NewMemoryRepository(cfg.Conversation.TTL)
	}
	conv := conversation.NewService(repo, cfg.Conversation.MaxTurns)

	gen := ai.ChainFromConfig(ctx, cfg.AI)
	svc := ai.NewService(gen, conv, cfg.AI.HistoryLimit)
	if !svc.Available() {
		logger.Warnf("no generator configured; AI routes answer with canned advice")
	}

	// revoked tokens live in Redis when reachable, else in process
	var (
		verifier middleware.Verifier
		revoker  handlers.Revoker
	)
	if cfg.JWT.Secret != "" {
		v := tokens.NewVerifier(cfg.JWT.Secret).WithDenylist(tokens.NewDenylist(rdb))
		verifier, revoker = v, v
	}

	var limit []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limit = append(limit, middleware.RedisRateLimitMiddleware(rdb, "ai", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			limit = append(limit, middleware.RateLimitMiddleware("ai", cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// ready only when the configured dependencies are usable
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"generator": svc.Available() || !cfg.AI.Configured(),
			"redis":     cfg.Redis.Host == "" || rdb != nil,
			"tokens":    verifier != nil,
		}
		ready := true
		for _, ok := range deps {
			ready = ready && ok
		}
		status, body := http.StatusOK, "ready"
		if !ready {
			status, body = http.StatusServiceUnavailable, "not_ready"
		}
		c.JSON(status, gin.H{"status": body, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	handlers.RegisterSwagger(r)
	handlers.RegisterAIRoutes(r, svc, verifier, limit...)
	handlers.RegisterAuthRoutes(r, revoker)
	if cfg.Backend.Embedded {
		logger.Warnf("serving an in-memory documents API; data is lost on restart")
		devbackend.RegisterRoutes(r, devbackend.New(), verifier)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Infof("starting resume AI gateway on %s (generators=%s)", addr, generatorNames(gen))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server failed: %v", err)
	}
}

func generatorNames(c *ai.Chain) string {
	if c.Len() == 0 {
		return "none"
	}
	return strings.ReplaceAll(c.Name(), ",", ", ")
}
