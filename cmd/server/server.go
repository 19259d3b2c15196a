package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"nyx-server/internal/config"
	"nyx-server/internal/domain/chat"
	"nyx-server/internal/domain/deck"
	"nyx-server/internal/domain/retry"
	"nyx-server/internal/domain/tool"
	"nyx-server/internal/infrastructure/llmprovider"
	"nyx-server/internal/infrastructure/logger"
	"nyx-server/internal/infrastructure/observability"
	"nyx-server/internal/infrastructure/pixabay"
	"nyx-server/internal/infrastructure/wikipedia"
	"nyx-server/internal/interfaces/httpserver"
	"nyx-server/internal/interfaces/httpserver/handlers"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	timeZone, err := time.LoadLocation(cfg.ChatTimeZone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.ChatTimeZone).Msg("invalid timezone, falling back to UTC")
		timeZone = time.UTC
	}

	provider := llmprovider.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey)
	wiki := wikipedia.NewClient(cfg.WikipediaBaseURL, log)
	photos := pixabay.NewClient(cfg.PixabayBaseURL, cfg.PixabayAPIKey, cfg.ImageProxyURL, log)

	pollPolicy := retry.PollPolicy(cfg.VideoPollInterval, cfg.VideoPollMaxDelay, cfg.VideoMaxWait)

	executor, err := tool.NewExecutor(map[tool.Name]tool.Handler{
		tool.NameGenerateImage: tool.NewImageGenerator(provider, cfg.ImageModel, log),
		tool.NameGenerateVideo: tool.NewVideoGenerator(provider, cfg.VideoModel, pollPolicy, log),
		tool.NameSearchWeb:     tool.NewWebSearch(wiki, log),
		tool.NameCalculator:    tool.NewCalculator(log),
	}, cfg.ToolTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("wire tool executor")
	}

	dispatcher := chat.NewDispatcher(provider, executor, cfg.ChatModel, log)
	titler := chat.NewTitler(provider, cfg.TitleModel, log)
	engine := deck.NewEngine(provider, deck.NewValidator(log), cfg.LayoutModel, log)
	resolver := deck.NewResolver(photos, cfg.AssetFetchTimeout, log)

	handlerProvider := handlers.NewProvider(
		dispatcher, titler, engine, resolver,
		timeZone, cfg.MinContentSlides, cfg.MaxContentSlides, cfg.ProxyAllowInsecure, log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
