package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/storefront/config"
	"github.com/yourusername/storefront/internal/delivery/telegram"
	"github.com/yourusername/storefront/internal/domain/repository"
	"github.com/yourusername/storefront/internal/infrastructure/gemini"
	"github.com/yourusername/storefront/internal/infrastructure/parser"
	"github.com/yourusername/storefront/internal/infrastructure/storage"
	"github.com/yourusername/storefront/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config yuklanmadi")
	}

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("bot to'xtadi")
	}
	log.Info("bot to'xtatildi")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.Level = level

	if cfg.LogFormat == "json" {
		log.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	} else {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}
	return log
}

// openStore konfiguratsiyaga qarab KV backendni ochish
func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (repository.KVStore, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return storage.NewMemoryKVStore(), io.NopCloser(nil), nil
	case config.BackendSQLite:
		kv, err := storage.NewSQLiteKVStore(cfg.StorePath)
		return kv, kv, err
	case config.BackendBolt:
		kv, err := storage.NewBoltKVStore(cfg.StorePath)
		return kv, kv, err
	case config.BackendRedis:
		kv, err := storage.NewRedisKVStore(cfg.RedisAddr, log)
		if err != nil {
			return nil, nil, err
		}
		if err := kv.Initialize(ctx); err != nil {
			kv.Close()
			return nil, nil, err
		}
		return kv, kv, nil
	default:
		return nil, nil, errors.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	kv, closer, err := openStore(ctx, cfg, log)
	if err != nil {
		return errors.Wrap(err, "failed to open store")
	}
	defer closer.Close()
	log.WithField("backend", cfg.StoreBackend).Info("store opened")

	catalog, err := usecase.NewCatalog(ctx, kv, log)
	if err != nil {
		return errors.Wrap(err, "failed to load catalog")
	}

	admin := usecase.NewAdmin(
		catalog,
		storage.NewMemoryAdminRepository(cfg.AuditLogSize),
		parser.NewExcelParser(log),
		log,
	)

	var ai repository.AIRepository
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return errors.Wrap(err, "failed to create gemini client")
		}
		defer client.Close()
		ai = client
	} else {
		log.Warn("GEMINI_API_KEY bo'sh, yordamchi o'chirilgan")
	}
	assistant := usecase.NewAssistant(ai, storage.NewMemoryChatRepository(cfg.MaxContextSize), catalog, log)

	openState := func(ctx context.Context, chatID int64) (telegram.CartStore, telegram.SessionStore, error) {
		ns := storage.NewPrefixedKVStore(kv, fmt.Sprintf("chat:%d:", chatID))
		cart, err := usecase.NewCart(ctx, ns, log)
		if err != nil {
			return nil, nil, err
		}
		session, err := usecase.NewSession(ctx, ns, log)
		if err != nil {
			return nil, nil, err
		}
		return cart, session, nil
	}

	bot, err := telegram.NewBotHandler(cfg.TelegramToken, catalog, admin, assistant, openState, log)
	if err != nil {
		return err
	}
	return bot.Start(ctx)
}
