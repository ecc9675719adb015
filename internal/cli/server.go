package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"quiz-solver-service/internal/app"
	"quiz-solver-service/internal/config"
	"quiz-solver-service/internal/infra/browser"
	"quiz-solver-service/internal/infra/memory"
	"quiz-solver-service/internal/infra/pdftable"
	redisinfra "quiz-solver-service/internal/infra/redis"
	transport "quiz-solver-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz solver server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	secret := cfg.Server.Secret
	if secret == "" {
		secret = os.Getenv("SECRET")
	}
	if secret == "" {
		return fmt.Errorf("server secret not configured (set server.secret or the SECRET env var)")
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var visited app.VisitedSet
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		visited = redisinfra.NewVisitedSet(client, config.Duration(cfg.Runner.VisitedTTL, 24*time.Hour))
	} else {
		visited = memory.NewVisitedSet()
	}

	headless := true
	if cfg.Browser.Headless != nil {
		headless = *cfg.Browser.Headless
	}
	fetcher, err := browser.NewFetcher(browser.Options{
		Headless:       headless,
		ExecutablePath: cfg.Browser.ExecutablePath,
		NavTimeout:     config.Duration(cfg.Browser.NavTimeout, 30*time.Second),
	}, logger)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	broker := app.NewRunBroker()
	pipeline := app.NewPipeline(fetcher, pdftable.New(), broker, logger, app.PipelineOptions{
		DownloadTimeout: config.Duration(cfg.Solver.DownloadTimeout, 30*time.Second),
		SubmitTimeout:   config.Duration(cfg.Submit.Timeout, 30*time.Second),
	})

	runner := app.NewRunner(pipeline, visited, int64(cfg.Runner.MaxConcurrent), cfg.Runner.MaxChainDepth, logger)

	handler := transport.NewHandler(secret, runner, logger)
	eventsHandler := transport.NewEventsHandler(broker, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/quiz", handler.ServeQuiz)
	mux.HandleFunc("/events", eventsHandler.ServeEvents)
	mux.HandleFunc("/", handler.ServeRoot)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info().Str("port", finalPort).Msg("starting quiz solver service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info().Msg("shutting down server...")
	case <-ctx.Done():
		logger.Info().Msg("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
