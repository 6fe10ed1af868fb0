package main

import (
	"context"
	"fmt"

	"github.com/tochemey/goakt/v2/goakt"
	golog "github.com/tochemey/goakt/v2/log"
	"go.uber.org/zap"

	"github.com/echocore/cogkernel/config"
	"github.com/echocore/cogkernel/core/attention"
	"github.com/echocore/cogkernel/core/consolidation"
	"github.com/echocore/cogkernel/core/continuity"
	"github.com/echocore/cogkernel/core/loop"
	"github.com/echocore/cogkernel/core/memorywindow"
	"github.com/echocore/cogkernel/core/salience"
	"github.com/echocore/cogkernel/core/thoughtassembly"
	"github.com/echocore/cogkernel/domain"
	"github.com/echocore/cogkernel/store/memstore"
)

// system wires the five component actors, the consolidation pool, and the
// Cognitive Loop coordinator into one runnable unit for the CLI.
type system struct {
	actorSystem goakt.ActorSystem

	salienceClient    *salience.Client
	memoryClient      *memorywindow.Client
	assemblyClient    *thoughtassembly.Client
	attentionClient   *attention.Client
	continuityClient  *continuity.Client

	pool   *consolidation.Pool
	engine *loop.Engine
	log    *zap.SugaredLogger
}

// newSystem spawns every component actor under a fresh goakt ActorSystem
// and wires a loop.Engine around their Clients. The vector store backend
// defaults to the in-process memstore; a real deployment swaps in
// supabasestore or dgraphstore without touching the loop (spec.md §6).
func newSystem(ctx context.Context, cfg config.Config, identityName string, log *zap.SugaredLogger) (*system, error) {
	actorSystem, err := goakt.NewActorSystem("cogkernel", goakt.WithLogger(golog.DefaultLogger))
	if err != nil {
		return nil, fmt.Errorf("new actor system: %w", err)
	}
	if err := actorSystem.Start(ctx); err != nil {
		return nil, fmt.Errorf("start actor system: %w", err)
	}

	salPID, err := actorSystem.Spawn(ctx, "salience", salience.NewActor(domain.DefaultSalienceWeights(), log))
	if err != nil {
		return nil, fmt.Errorf("spawn salience actor: %w", err)
	}

	memPID, err := actorSystem.Spawn(ctx, "memory-windows", memorywindow.NewActor(cfg.MaxWindows, log))
	if err != nil {
		return nil, fmt.Errorf("spawn memory windows actor: %w", err)
	}

	asmActor, err := thoughtassembly.NewActor(cfg.CacheSize, cfg.MaxChainDepth, cfg.ValidateSalience, log)
	if err != nil {
		return nil, fmt.Errorf("new thought assembly actor: %w", err)
	}
	asmPID, err := actorSystem.Spawn(ctx, "thought-assembly", asmActor)
	if err != nil {
		return nil, fmt.Errorf("spawn thought assembly actor: %w", err)
	}

	attnPID, err := actorSystem.Spawn(ctx, "attention", attention.NewActor(attention.Config{
		MinFocusDuration: cfg.MinFocusDuration,
		ForgetThreshold:  cfg.ForgetThreshold,
		ConnectionBoost:  cfg.ConnectionBoost,
	}, log))
	if err != nil {
		return nil, fmt.Errorf("spawn attention actor: %w", err)
	}

	conPID, err := actorSystem.Spawn(ctx, "continuity", continuity.NewActor(identityName, log))
	if err != nil {
		return nil, fmt.Errorf("spawn continuity actor: %w", err)
	}

	salienceClient := salience.NewClient(actorSystem, salPID)
	memoryClient := memorywindow.NewClient(actorSystem, memPID)
	assemblyClient := thoughtassembly.NewClient(actorSystem, asmPID)
	attentionClient := attention.NewClient(actorSystem, attnPID)
	continuityClient := continuity.NewClient(actorSystem, conPID)

	pool := consolidation.New(
		consolidation.Config{Concurrency: cfg.ConsolidationConcurrency},
		memstore.NewFakeEmbedder(768),
		memstore.New(),
		log,
	)

	engine := loop.NewEngine(cfg, salienceClient, memoryClient, attentionClient, assemblyClient, continuityClient, pool)

	return &system{
		actorSystem:      actorSystem,
		salienceClient:   salienceClient,
		memoryClient:     memoryClient,
		assemblyClient:   assemblyClient,
		attentionClient:  attentionClient,
		continuityClient: continuityClient,
		pool:             pool,
		engine:           engine,
		log:              log.With("component", "cmd"),
	}, nil
}

// Stop tears down the actor system. Consolidation tasks already in flight
// are not awaited; they are fire-and-forget by design.
func (s *system) Stop(ctx context.Context) error {
	return s.actorSystem.Stop(ctx)
}
