// Package boot assembles a Coordinator and its collaborators from a
// loaded Config, the single place every entrypoint (CLI, server) goes
// to stand up the service.
package boot

import (
	"context"
	"fmt"

	"github.com/automenta/mcr/internal/broadcast"
	"github.com/automenta/mcr/internal/config"
	"github.com/automenta/mcr/internal/coordinator"
	"github.com/automenta/mcr/internal/embed"
	"github.com/automenta/mcr/internal/llmgw"
	"github.com/automenta/mcr/internal/logging"
	"github.com/automenta/mcr/internal/metrics"
	"github.com/automenta/mcr/internal/ontology"
	"github.com/automenta/mcr/internal/promptreg"
	"github.com/automenta/mcr/internal/reasoner"
	"github.com/automenta/mcr/internal/router"
	"github.com/automenta/mcr/internal/session"
	"github.com/automenta/mcr/internal/strategy"
)

// Services bundles every collaborator alongside the Coordinator so a
// caller that needs direct access (e.g. a debug CLI command) does not
// have to reach through it.
type Services struct {
	Coordinator *coordinator.Coordinator
	Sessions    session.Store
	Strategies  *strategy.Registry
	Ontology    *ontology.StaticRegistry
	Broadcaster *broadcast.Broadcaster
	Metrics     *metrics.Metrics
}

// Build wires every subsystem named in cfg into a ready-to-use
// Coordinator.
func Build(ctx context.Context, cfg *config.Config) (*Services, error) {
	logging.Init(logging.Config{
		DebugMode: cfg.Logging.DebugMode,
		Directory: cfg.Logging.Directory,
		Level:     levelFromString(cfg.Logging.Level),
	})

	sessions, err := buildSessionStore(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("boot: session store: %w", err)
	}

	llm, err := llmgw.New(llmgw.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.TimeoutDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("boot: llm gateway: %w", err)
	}

	reasonerGW := reasoner.New(reasoner.Config{
		QueryTimeout: cfg.Reasoner.QueryTimeoutDuration(),
		FactLimit:    cfg.Reasoner.FactLimit,
	})

	prompts := promptreg.NewDefault()
	strategies, err := strategy.NewDefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("boot: strategy registry: %w", err)
	}
	executor := strategy.NewExecutor(prompts, llm, strategy.AsValidator(reasonerGW))

	ontologyReg := ontology.NewStaticRegistry()

	rt, err := buildRouter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("boot: input router: %w", err)
	}

	bcast := broadcast.New()

	coord := coordinator.New(
		coordinator.Config{
			ModelID:    cfg.LLM.Model,
			DebugLevel: coordinator.DebugLevel("basic"),
		},
		sessions,
		ontologyReg,
		strategies,
		executor,
		reasonerGW,
		llm,
		prompts,
		rt,
		bcast,
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		coord.SetMetrics(m)
	}

	return &Services{
		Coordinator: coord,
		Sessions:    sessions,
		Strategies:  strategies,
		Ontology:    ontologyReg,
		Broadcaster: bcast,
		Metrics:     m,
	}, nil
}

func buildSessionStore(cfg config.SessionConfig) (session.Store, error) {
	switch cfg.StoreType {
	case "file":
		return session.NewFileStore(cfg.Directory)
	case "sql":
		return session.NewSQLStore(cfg.Driver, cfg.DSN)
	case "memory", "":
		return session.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store type %q", cfg.StoreType)
	}
}

func buildRouter(ctx context.Context, cfg *config.Config) (router.Router, error) {
	var perfDB router.PerformanceDB
	if cfg.Router.PerfDBPath != "" {
		db, err := router.NewSQLPerformanceDB("sqlite3", cfg.Router.PerfDBPath)
		if err != nil {
			return nil, err
		}
		perfDB = db
	} else {
		perfDB = &router.MemoryPerformanceDB{}
	}

	if cfg.Router.Mode != "semantic" {
		return router.NewKeywordRouter(perfDB), nil
	}

	embedder, err := embed.New(embed.Config{
		Provider: cfg.Embedding.Provider,
		APIKey:   cfg.Embedding.APIKey,
		Model:    cfg.Embedding.Model,
	})
	if err != nil {
		return nil, err
	}
	if embedder == nil {
		return router.NewKeywordRouter(perfDB), nil
	}
	return router.NewSemanticRouter(ctx, perfDB, embedder), nil
}

func levelFromString(level string) int {
	switch level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
