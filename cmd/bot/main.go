package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/bruno/internal/client/backend"
	"github.com/aliskhannn/bruno/internal/config"
	"github.com/aliskhannn/bruno/internal/content"
	"github.com/aliskhannn/bruno/internal/delivery/httpapi"
	"github.com/aliskhannn/bruno/internal/delivery/telegram"
	"github.com/aliskhannn/bruno/internal/infra/postgres"
	"github.com/aliskhannn/bruno/internal/infra/postgres/repository"
	"github.com/aliskhannn/bruno/internal/infra/redis"
	"github.com/aliskhannn/bruno/internal/initdata"
	"github.com/aliskhannn/bruno/internal/logger"
	"github.com/aliskhannn/bruno/internal/service"
	"github.com/aliskhannn/bruno/internal/storage"
	"github.com/aliskhannn/bruno/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("application stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	// Storage.
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	snapshots := repository.NewSnapshotStore(postgres.NewTransactor(pool), userRepo, statsRepo)

	redisClient, err := redis.NewClient(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()
	profileCache := redis.NewProfileCache(redisClient, cfg.Redis.ProfileTTL)

	lessons, err := content.Load()
	if err != nil {
		return err
	}

	// Services.
	registry := store.NewRegistry(lg.Named("store"))
	backendClient := backend.New(cfg.Backend.URL, backend.WithTimeout(cfg.Backend.Timeout))
	signer := initdata.NewSigner(cfg.TelegramAPIToken)

	userService := service.NewUserService(userRepo, lg)
	profileService := service.NewProfileService(backendClient, signer, profileCache, snapshots, registry, lg)
	pathService := service.NewPathService(lessons, profileService, lg)
	lessonService := service.NewLessonService(lessons, storage.NewLessonStorage(), profileService, lg)
	wordsService := service.NewWordsService(lessons, storage.NewDeckStorage())
	resetService := service.NewResetService(snapshots, profileCache, registry, lg)
	reminderService := service.NewReminderService(userRepo, cfg.Reminders.Schedule, lg.Named("reminders"))

	// Telegram.
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(botCommands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		telegram.Services{
			Users:   userService,
			Profile: profileService,
			Path:    pathService,
			Lessons: lessonService,
			Words:   wordsService,
			Reset:   resetService,
		},
		registry,
		storage.NewReminderStorage(),
		cfg.WebAppURL,
	)
	reminderService.SetNotifier(handler)

	// HTTP.
	api := httpapi.NewHandler(profileService, userService, pathService, lg)
	router := httpapi.NewRouter(api, httpapi.RouterConfig{
		BotToken:       cfg.TelegramAPIToken,
		InitDataTTL:    cfg.Backend.InitDataTTL,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, lg.Named("http"))
	server := httpapi.NewServer(cfg.HTTP.Addr, router, lg.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(gctx) })
	g.Go(func() error { return server.Run(gctx) })
	if cfg.Reminders.Enabled {
		g.Go(func() error { return reminderService.Start(gctx) })
	}

	return g.Wait()
}

func botCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Запустить бота",
		},
		{
			Command:     "profile",
			Description: "Уровень, опыт и серия",
		},
		{
			Command:     "path",
			Description: "Путь обучения",
		},
		{
			Command:     "lesson",
			Description: "Следующий урок",
		},
		{
			Command:     "words",
			Description: "Повторить слова",
		},
		{
			Command:     "reminders",
			Description: "Включить или выключить напоминания",
		},
		{
			Command:     "reset",
			Description: "Сбросить локальные данные",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}
}
