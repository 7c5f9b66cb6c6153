// Command tokenmetrics-mcp serves the Token Metrics endpoint tools over
// MCP stdio so LLM agents can call them.
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/redis/go-redis/v9"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/cache"
	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
	"github.com/cryptodata-labs/tokenmetrics-go/pkg/logging"
	"github.com/cryptodata-labs/tokenmetrics-go/pkg/metrics"
	"github.com/cryptodata-labs/tokenmetrics-go/pkg/pagination"
	"github.com/cryptodata-labs/tokenmetrics-go/tools"
)

const version = "0.1.0"

type config struct {
	APIKey        string        `env:"TMAI_API_KEY,required"`
	BaseURL       string        `env:"TM_BASE_URL" envDefault:"https://api.tokenmetrics.com/v2"`
	IntegrationID string        `env:"TM_INTEGRATION_ID" envDefault:"tokenmetrics-go"`
	RedisURL      string        `env:"REDIS_URL"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr   string        `env:"METRICS_ADDR"`
}

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fallback := logging.Setup(logging.DefaultConfig())
		fallback.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger := logging.Setup(logging.Config{Level: logging.LogLevel(cfg.LogLevel)})

	clientCfg := client.Config{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.BaseURL,
		IntegrationID: cfg.IntegrationID,
	}

	if cfg.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn().Err(err).Str("redis_url", cfg.RedisURL).
				Msg("Redis unreachable, response caching disabled")
		} else {
			clientCfg.Cache = cache.NewStore(redisClient, cfg.CacheTTL)
			logger.Info().Str("redis_url", cfg.RedisURL).Dur("ttl", cfg.CacheTTL).
				Msg("Response caching enabled")
		}
	}

	tmClient, err := client.New(clientCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create client")
	}

	aggregator := pagination.NewAggregator(tmClient, pagination.DefaultLimitTable())

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("Serving metrics")
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	mcpServer := server.NewMCPServer(
		"tokenmetrics",
		version,
		server.WithToolCapabilities(true),
	)

	definitions := tools.All(aggregator)
	for _, def := range definitions {
		mcpServer.AddTool(def.Tool, def.Handler)
	}

	logger.Info().Int("tools", len(definitions)).Msg("Serving tools over stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
