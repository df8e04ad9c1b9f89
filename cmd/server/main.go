// Command server runs the kids talk HTTP API.
//
// @title        Kids Talk API
// @version      1.0
// @description  Conversation, quiz and roleplay activities for children, with sentiment reports for parents.
// @BasePath     /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	_ "github.com/tbourn/kids-talk-backend/docs"
	"github.com/tbourn/kids-talk-backend/internal/config"
	httpapi "github.com/tbourn/kids-talk-backend/internal/http"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/observability"
	"github.com/tbourn/kids-talk-backend/internal/quizbank"
	"github.com/tbourn/kids-talk-backend/internal/repo"
	"github.com/tbourn/kids-talk-backend/internal/services"
	"github.com/tbourn/kids-talk-backend/internal/session"
	"github.com/tbourn/kids-talk-backend/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	if err := config.LoadDotenv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	sysutil.SetupLogging(os.Stdout, cfg.LogLevel, cfg.OTEL.ServiceName, cfg.LogPretty)
	ver := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, ver); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg config.Config, ver string) error {
	shutdownOTel, err := observability.Setup(ctx, cfg.OTEL, ver)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database ready")

	banks, err := loadBanks(cfg)
	if err != nil {
		return err
	}

	gw := llm.NewGateway(llm.NewOpenAIModel(cfg.LLM, nil))
	log.Info().Str("base_url", cfg.LLM.BaseURL).Str("model", cfg.LLM.Model).Msg("language model configured")

	pipe := services.NewAnalysisPipeline(db, gw, cfg.Analysis.Workers, cfg.Analysis.QueueSize)
	pipe.Start()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:       db,
		LLM:      gw,
		Quizzes:  banks,
		Sessions: session.NewStore(),
		Sink:     pipe,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", ver).Str("base_path", cfg.APIBasePath).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		pipe.Close()
		return err
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	// In-flight turns are done; let queued analyses finish.
	pipe.Close()
	return nil
}

func loadBanks(cfg config.Config) (httpapi.QuizBanks, error) {
	topic, err := quizbank.LoadBlocks(cfg.QuizDataPath)
	if err != nil {
		return httpapi.QuizBanks{}, fmt.Errorf("load %s: %w", cfg.QuizDataPath, err)
	}
	animal, err := quizbank.LoadBlocks(cfg.AnimalDataPath)
	if err != nil {
		return httpapi.QuizBanks{}, fmt.Errorf("load %s: %w", cfg.AnimalDataPath, err)
	}
	syllable, err := quizbank.LoadWords(cfg.SyllableDataPath)
	if err != nil {
		return httpapi.QuizBanks{}, fmt.Errorf("load %s: %w", cfg.SyllableDataPath, err)
	}
	log.Info().
		Int("topic_questions", topic.Len()).
		Int("animal_questions", animal.Len()).
		Int("syllable_words", syllable.Len()).
		Msg("quiz banks loaded")
	return httpapi.QuizBanks{Topic: topic, Animal: animal, Syllable: syllable}, nil
}
