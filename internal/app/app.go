package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/config"
	"github.com/Freeeeeet/tutor_booking/internal/controller"
	"github.com/Freeeeeet/tutor_booking/internal/controller/handlers"
	"github.com/Freeeeeet/tutor_booking/internal/lock"
	"github.com/Freeeeeet/tutor_booking/internal/notify"
	"github.com/Freeeeeet/tutor_booking/internal/repository"
	"github.com/Freeeeeet/tutor_booking/internal/repository/memstore"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/Freeeeeet/tutor_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App все компоненты сервиса, собранные по конфигурации
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	server    *fiber.App
	bot       *controller.BotController
	scheduler *Scheduler
	closers   []func()
}

type repositories struct {
	store          schedule.Store
	workshops      service.WorkshopRepository
	bookings       service.BookingRepository
	unavailability service.UnavailabilityRepository
	questions      service.QuestionRepository
}

// New подключает хранилище, guard и Telegram и собирает сервисы
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	var (
		repos repositories
		pool  *pgxpool.Pool
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		mem := memstore.New()
		repos = repositories{
			store:          mem,
			workshops:      mem.Workshops(),
			bookings:       mem.Bookings(),
			unavailability: mem.Unavailability(),
			questions:      mem.Questions(),
		}
	default:
		var err error
		pool, err = ConnectDB(ctx, cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)

		migrator, err := NewMigrator(pool, cfg.MigrationsDir, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		err = migrator.Run(ctx)
		_ = migrator.Close()
		if err != nil {
			a.Close()
			return nil, err
		}

		workshops := repository.NewWorkshopRepository(pool, logger)
		bookings := repository.NewBookingRepository(pool, logger)
		unavailability := repository.NewUnavailabilityRepository(pool, logger)
		repos = repositories{
			store:          repository.NewCommitmentStore(workshops, bookings, unavailability),
			workshops:      workshops,
			bookings:       bookings,
			unavailability: unavailability,
			questions:      repository.NewQuestionRepository(pool, logger),
		}
	}

	guard, err := a.newGuard(ctx, pool)
	if err != nil {
		a.Close()
		return nil, err
	}

	matcher, err := schedule.MatcherByName(cfg.ConflictMode)
	if err != nil {
		a.Close()
		return nil, err
	}

	var (
		notifier notify.Notifier = notify.Nop{}
		tgBot    *bot.Bot
	)
	if cfg.TelegramEnabled() {
		tgBot, err = bot.New(cfg.TelegramToken)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create telegram bot: %w", err)
		}
		notifier = notify.NewTelegram(tgBot, cfg.TelegramAdminChatID, logger)
	} else {
		logger.Info("Telegram is not configured, notifications disabled")
	}

	checker := schedule.NewConflictChecker(repos.store, matcher)
	availability := schedule.NewAvailabilityCalculator(repos.store, cfg.Location())
	validator := schedule.NewBookingValidator(repos.store, checker)

	bookingService := service.NewBookingService(repos.bookings, validator, guard, notifier, logger)
	workshopService := service.NewWorkshopService(repos.workshops, repos.bookings, checker, guard, notifier, cfg.Location(), logger)
	unavailabilityService := service.NewUnavailabilityService(repos.unavailability, checker, guard, notifier, logger)
	questionService := service.NewQuestionService(repos.questions, logger)
	agendaService := service.NewAgendaService(repos.store)
	authService := service.NewAdminAuthService(cfg.AdminPassword, cfg.AdminJWTSecret, cfg.AdminTokenTTL, logger)

	h := handlers.NewHandlers(
		availability,
		bookingService,
		workshopService,
		unavailabilityService,
		questionService,
		agendaService,
		authService,
		logger,
	)
	a.server = controller.NewServer(h, cfg.CORSOrigins, cfg.RequestTimeout, logger)

	if tgBot != nil {
		a.bot = controller.NewBotController(tgBot, cfg.TelegramAdminChatID, availability, agendaService, logger)
		a.scheduler = NewScheduler(cfg.DigestCron, agendaService, notifier, cfg.Location(), logger)
	}

	logger.Info("Application assembled",
		zap.String("store", cfg.StoreDriver),
		zap.String("write_guard", cfg.WriteGuard),
		zap.String("conflict_mode", cfg.ConflictMode),
		zap.String("timezone", cfg.Location().String()))

	return a, nil
}

func (a *App) newGuard(ctx context.Context, pool *pgxpool.Pool) (lock.Guard, error) {
	switch a.cfg.WriteGuard {
	case config.GuardNone:
		a.logger.Warn("Write guard disabled, concurrent bookings of one slot are not prevented")
		return lock.Nop{}, nil
	case config.GuardLocal:
		return lock.NewLocal(), nil
	case config.GuardPostgres:
		return lock.NewPostgres(pool), nil
	case config.GuardRedis:
		opts, err := redis.ParseURL(a.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		return lock.NewRedis(client, a.cfg.LockTTL), nil
	}
	return nil, lock.ErrUnknownMode(a.cfg.WriteGuard)
}

// Server HTTP приложение
func (a *App) Server() *fiber.App {
	return a.server
}

// Run обслуживает HTTP, бота и cron, пока не отменён ctx
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.scheduler != nil {
		if err := a.scheduler.Start(gctx); err != nil {
			return err
		}
		defer a.scheduler.Stop()
	}

	g.Go(func() error {
		a.logger.Info("🚀 HTTP server listening", zap.String("addr", a.cfg.HTTPAddr))
		if err := a.server.Listen(a.cfg.HTTPAddr); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.server.ShutdownWithContext(shutdownCtx); err != nil {
			a.logger.Error("HTTP shutdown failed", zap.Error(err))
		}
		return nil
	})

	if a.bot != nil {
		if err := a.bot.RegisterHandlers(ctx); err != nil {
			a.logger.Warn("Bot commands not registered", zap.Error(err))
		}
		g.Go(func() error {
			return a.bot.Start(gctx)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close освобождает соединения в обратном порядке
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
