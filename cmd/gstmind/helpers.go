package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/composer"
	"github.com/gstmind/gstmind/internal/config"
	"github.com/gstmind/gstmind/internal/kb"
	"github.com/gstmind/gstmind/internal/llm"
	"github.com/gstmind/gstmind/internal/orchestrator"
	"github.com/gstmind/gstmind/internal/resolver"
	"github.com/gstmind/gstmind/internal/retriever"
	"github.com/gstmind/gstmind/internal/storage"
)

// generateRPM paces calls to whichever generation backend is selected.
const generateRPM = 30

func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open invoice store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate invoice store: %w", err)
	}
	return store, nil
}

// loadIndex reads the knowledge base from disk. A missing knowledge base
// degrades to an empty index instead of failing: structured queries must
// keep working without it.
func loadIndex() *retriever.Index {
	embedder := retriever.NewHashingEmbedder(0)

	kbPath := config.ExpandPath(viper.GetString("knowledge_base.path"))
	chunks, err := kb.Load(kbPath)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			slog.Warn("no knowledge base found, run 'gstmind index' to build one", "path", kbPath)
		} else {
			common.LogError(err, "knowledge base unavailable, semantic answers will be empty",
				common.Fields{"path": kbPath})
		}
		return retriever.NewIndex(embedder, nil)
	}

	index := retriever.NewIndex(embedder, chunks)
	slog.Info("Loaded knowledge base", "path", kbPath, "chunks", index.Size())
	return index
}

// discoverBackend probes the candidate generation backends in priority
// order, low-latency first. The returned client may be nil; the composer
// then degrades to its offline placeholder.
func discoverBackend(ctx context.Context) llm.Client {
	var candidates []llm.Client

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		for _, m := range []string{"gemini-1.5-flash", "gemini-1.5-pro"} {
			if client, err := llm.NewClient(llm.Config{Provider: "gemini", APIKey: key, Model: m}); err == nil {
				candidates = append(candidates, client)
			}
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if client, err := llm.NewClient(llm.Config{Provider: "openai", APIKey: key}); err == nil {
			candidates = append(candidates, client)
		}
	}

	if len(candidates) == 0 {
		slog.Warn("no generation API keys configured, using offline answers")
		return nil
	}

	chosen, err := llm.Discover(ctx, candidates)
	if err != nil {
		if !errors.Is(err, common.ErrNoBackend) {
			common.LogError(err, "backend discovery failed", nil)
		}
		slog.Warn("no generation backend reachable, using offline answers")
		return nil
	}

	return llm.NewRateLimitedClient(chosen, generateRPM)
}

// buildOrchestrator wires the full query stack. The caller must invoke
// the returned cleanup function.
func buildOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, func(), error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = store.Close() }

	index := loadIndex()
	backend := discoverBackend(ctx)

	o := orchestrator.NewWithTopK(
		resolver.New(store),
		index,
		composer.New(backend),
		viper.GetInt("retrieval.top_k"),
	)
	return o, cleanup, nil
}
