package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/schoolyard/edugen/internal/api"
	"github.com/schoolyard/edugen/internal/articlegen"
	"github.com/schoolyard/edugen/internal/config"
	"github.com/schoolyard/edugen/internal/grading"
	"github.com/schoolyard/edugen/internal/llm"
	"github.com/schoolyard/edugen/internal/questiongen"
	"github.com/schoolyard/edugen/internal/store"
	"github.com/schoolyard/edugen/internal/tagging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides EDUGEN_ADDR)")
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))

	if err := cfg.LLM.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	provider, err := llm.NewProvider(ctx, cfg.LLM, s.EventRepo())
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}
	slog.Info("LLM provider ready", "provider", cfg.LLM.Provider, "model", provider.ModelID())

	handler := api.NewHandler(api.Deps{
		Store:              s,
		Questions:          questiongen.New(provider, questiongen.DefaultConfig()),
		Articles:           articlegen.New(provider, articlegen.DefaultConfig()),
		QuestionGrader:     grading.New(provider, grading.QuestionRubric(), grading.DefaultConfig()),
		ArticleGrader:      grading.New(provider, grading.ArticleRubric(), grading.DefaultConfig()),
		Tagger:             tagging.New(provider, tagging.DefaultConfig()),
		Token:              cfg.APIToken,
		QuestionMaxRetries: cfg.QuestionMaxRetries,
		ArticleMaxRetries:  cfg.ArticleMaxRetries,
	})
	if cfg.APIToken == "" {
		slog.Warn("EDUGEN_API_TOKEN not set, /api/v1 is unauthenticated")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", cfg.Addr, "db", dbPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
