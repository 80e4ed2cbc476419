package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ex-mtbot/internal/session"
	"ex-mtbot/pkg/botapi"
	"ex-mtbot/pkg/mtbot"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	pollRetryDelay         = 3 * time.Second
)

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := loadConfig(resolveConfigFilePath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, _ := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := session.Open(ctx, logger, cfg.Session)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Warn("close session storage", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	runtime, err := buildRuntime(cfg, logger, storage, registry)
	if err != nil {
		return err
	}

	if cfg.Metrics.Listen != "" {
		server := newMetricsServer(cfg.Metrics.Listen, registry)
		go func() {
			logger.Info("metrics server listening", "addr", cfg.Metrics.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown metrics server", "error", err)
			}
		}()
	}

	poller := updatePoller{
		logger:  logger,
		timeout: cfg.Polling.Timeout,
		limit:   cfg.Polling.Limit,
		allowed: cfg.allowedUpdates(),
	}
	if err := runtime.Run(ctx, poller.run); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run mtbot: %w", err)
	}

	return nil
}

func buildRuntime(
	cfg appConfig,
	logger *slog.Logger,
	storage session.Storage,
	registry prometheus.Registerer,
) (*mtbot.Runtime, error) {
	rpcTimeout, err := cfg.rpcTimeout()
	if err != nil {
		return nil, err
	}

	clientOptions := []mtbot.Option{
		mtbot.WithRPCTimeout(rpcTimeout),
		mtbot.WithStickerCacheSize(cfg.Client.StickerCacheSize),
		mtbot.WithReplyResolution(cfg.Client.ResolveReplies),
	}
	if peers, ok := session.PeerStoreOf(storage); ok {
		clientOptions = append(clientOptions, mtbot.WithPeerStore(peers))
	}

	runtime, err := mtbot.NewRuntime(mtbot.Options{
		AppID:         cfg.Telegram.AppID,
		AppHash:       cfg.Telegram.AppHash,
		BotToken:      cfg.Telegram.BotToken,
		Session:       storage,
		TestDC:        cfg.Telegram.TestDC,
		ServerAddress: cfg.Telegram.ServerAddress,
		Logger:        logger,
		Metrics:       registry,
		UpdateBuffer:  cfg.Client.UpdateBuffer,
		ClientOptions: clientOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("build runtime: %w", err)
	}

	return runtime, nil
}

func newMetricsServer(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// updatePoller long-polls the client and logs every update it receives.
type updatePoller struct {
	logger  *slog.Logger
	timeout int
	limit   int
	allowed []botapi.UpdateKind
}

func (p updatePoller) run(ctx context.Context, client *mtbot.Client) error {
	me, err := client.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("get me: %w", err)
	}
	p.logger.InfoContext(ctx, "polling updates", "bot_id", me.ID, "username", me.Username)

	offset := 0
	for {
		updates, err := client.GetUpdates(ctx, botapi.GetUpdatesParams{
			Offset:         offset,
			Limit:          p.limit,
			Timeout:        p.timeout,
			AllowedUpdates: p.allowed,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			delay := pollRetryDelay
			if retryAfter, ok := botapi.AsRateLimit(err); ok {
				delay = retryAfter
			}
			p.logger.WarnContext(ctx, "get updates failed", "error", err, "retry_in", delay)
			if err := sleepContext(ctx, delay); err != nil {
				return err
			}
			continue
		}

		for _, update := range updates {
			p.logger.InfoContext(ctx, "update", updateAttrs(update)...)
			offset = update.UpdateID + 1
		}
	}
}

func updateAttrs(update botapi.Update) []any {
	attrs := []any{"update_id", update.UpdateID, "kind", update.Kind()}
	if chat := update.EffectiveChat(); chat != nil {
		attrs = append(attrs, "chat_id", chat.ID, "chat_type", chat.Type)
	}
	if message := effectiveMessage(update); message != nil {
		attrs = append(attrs, "message_id", message.MessageID, "message_type", message.Type())
	}

	return attrs
}

func effectiveMessage(update botapi.Update) *botapi.Message {
	switch {
	case update.Message != nil:
		return update.Message
	case update.EditedMessage != nil:
		return update.EditedMessage
	case update.ChannelPost != nil:
		return update.ChannelPost
	case update.EditedChannelPost != nil:
		return update.EditedChannelPost
	default:
		return nil
	}
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
