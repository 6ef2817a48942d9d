package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/davidbz/sophie/internal/config"
	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/http"
	"github.com/davidbz/sophie/internal/http/middleware"
	"github.com/davidbz/sophie/internal/ledger"
	"github.com/davidbz/sophie/internal/observability"
	"github.com/davidbz/sophie/internal/provider/gemini"
	"github.com/davidbz/sophie/internal/provider/mistral"
	"github.com/davidbz/sophie/internal/provider/openai"
	"github.com/davidbz/sophie/internal/provider/registry"
	"github.com/davidbz/sophie/internal/provider/sim"
	"github.com/davidbz/sophie/internal/session"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

//nolint:funlen // Linear wiring of the whole object graph.
func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Provider adapters. Each registers regardless of credentials; a missing
	// key degrades to AuthMissing failures per call instead of a dead route.
	if err := container.Provide(openai.NewProvider); err != nil {
		log.Fatalf("Failed to provide OpenAI provider: %v", err)
	}
	if err := container.Provide(gemini.NewProvider); err != nil {
		log.Fatalf("Failed to provide Gemini provider: %v", err)
	}
	if err := container.Provide(mistral.NewProvider); err != nil {
		log.Fatalf("Failed to provide Mistral provider: %v", err)
	}
	if err := container.Provide(sim.NewProvider); err != nil {
		log.Fatalf("Failed to provide sim provider: %v", err)
	}

	// Provider registry
	if err := container.Provide(func(
		openaiProvider *openai.Provider,
		geminiProvider *gemini.Provider,
		mistralProvider *mistral.Provider,
		simProvider *sim.Provider,
	) (domain.ProviderRegistry, error) {
		ctx := context.Background()
		reg := registry.NewRegistry()

		providers := []domain.Provider{openaiProvider, geminiProvider, mistralProvider, simProvider}
		for _, p := range providers {
			if err := reg.Register(ctx, p); err != nil {
				return nil, err
			}
		}

		return reg, nil
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Model catalog
	if err := container.Provide(func() (domain.Catalog, error) {
		var models []domain.ModelDescriptor
		models = append(models, gemini.Models()...)
		models = append(models, openai.Models()...)
		models = append(models, mistral.Models()...)
		models = append(models, sim.Models()...)
		return domain.NewStaticCatalog(models...)
	}); err != nil {
		log.Fatalf("Failed to provide catalog: %v", err)
	}

	// Cost calculator
	if err := container.Provide(func(catalog domain.Catalog) domain.CostCalculator {
		return domain.NewStandardCostCalculator(catalog)
	}); err != nil {
		log.Fatalf("Failed to provide cost calculator: %v", err)
	}

	// Ledgers
	if err := container.Provide(func(cfg *config.LedgerConfig) domain.UsageLedger {
		return ledger.NewUsageLog(cfg.UsagePath)
	}); err != nil {
		log.Fatalf("Failed to provide usage ledger: %v", err)
	}
	if err := container.Provide(func(cfg *config.LedgerConfig) domain.FeedbackLedger {
		return ledger.NewFeedbackLog(cfg.FeedbackPath)
	}); err != nil {
		log.Fatalf("Failed to provide feedback ledger: %v", err)
	}
	if err := container.Provide(ledger.NewReporter); err != nil {
		log.Fatalf("Failed to provide reporter: %v", err)
	}

	// Sessions (snapshots to Redis when configured)
	if err := container.Provide(func(cfg *config.SessionConfig) *session.Manager {
		if cfg.RedisAddr == "" {
			return session.NewManager(nil)
		}

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		snaps := session.NewRedisSnapshots(client, time.Duration(cfg.SnapshotTTL)*time.Second)
		return session.NewManager(snaps)
	}); err != nil {
		log.Fatalf("Failed to provide session manager: %v", err)
	}

	// Chat service
	if err := container.Provide(func(
		catalog domain.Catalog,
		reg domain.ProviderRegistry,
		calc domain.CostCalculator,
		usage domain.UsageLedger,
		feedback domain.FeedbackLedger,
		cfg *config.ChatConfig,
	) *domain.ChatService {
		timeout := time.Duration(cfg.ProviderTimeout) * time.Second
		return domain.NewChatService(catalog, reg, calc, usage, feedback, timeout)
	}); err != nil {
		log.Fatalf("Failed to provide chat service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
