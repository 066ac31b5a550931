package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/alert"
	"github.com/aliskhannn/pickup-notifier/internal/api/handlers/device"
	"github.com/aliskhannn/pickup-notifier/internal/api/handlers/inbox"
	"github.com/aliskhannn/pickup-notifier/internal/api/handlers/reminder"
	"github.com/aliskhannn/pickup-notifier/internal/api/router"
	"github.com/aliskhannn/pickup-notifier/internal/config"
	"github.com/aliskhannn/pickup-notifier/internal/message"
	"github.com/aliskhannn/pickup-notifier/internal/rabbitmq/queue"
	devicerepo "github.com/aliskhannn/pickup-notifier/internal/repository/device"
	inboxrepo "github.com/aliskhannn/pickup-notifier/internal/repository/inbox"
	notifrepo "github.com/aliskhannn/pickup-notifier/internal/repository/notification"
	orderrepo "github.com/aliskhannn/pickup-notifier/internal/repository/order"
	"github.com/aliskhannn/pickup-notifier/internal/schedule"
	inboxsvc "github.com/aliskhannn/pickup-notifier/internal/service/inbox"
	remindersvc "github.com/aliskhannn/pickup-notifier/internal/service/reminder"
	"github.com/aliskhannn/pickup-notifier/internal/worker"
	"github.com/aliskhannn/pickup-notifier/pkg/email"
	"github.com/aliskhannn/pickup-notifier/pkg/push"
	"github.com/aliskhannn/pickup-notifier/pkg/telegram"
)

// app holds the wired services shared by the commands.
type app struct {
	cfg        *config.Config
	db         *dbpg.DB
	devices    *devicerepo.Repository
	reminders  *remindersvc.Service
	inbox      *inboxsvc.Service
	dispatcher *worker.Dispatcher
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err := rdb.Ping(ctx).Err(); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	alerter, err := newAlerter(cfg.Alerts)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	records := notifrepo.NewRepository(db)
	orders := orderrepo.NewRepository(db)
	devices := devicerepo.NewRepository(db)

	pushClient := push.NewClient(push.Config{
		Endpoint:    cfg.Push.Endpoint,
		AccessToken: cfg.Push.AccessToken,
		Timeout:     cfg.Push.Timeout,
	})

	planner := schedule.NewPlanner(loc, cfg.Scheduler.SameDayHour, cfg.Scheduler.OverdueAfter)
	reminders := remindersvc.NewService(orders, records, planner, cfg.Retry)
	notifications := inboxsvc.NewService(inboxrepo.NewRepository(db), rdb, devices, pushClient, cfg.Retry)

	workerID := cfg.Dispatcher.WorkerID
	if workerID == "" {
		workerID = defaultWorkerID()
	}

	dispatcher := worker.NewDispatcher(
		worker.DispatcherConfig{
			WorkerID:    workerID,
			Interval:    cfg.Dispatcher.Interval,
			BatchSize:   cfg.Dispatcher.BatchSize,
			MaxAttempts: cfg.Dispatcher.MaxAttempts,
			ClaimLease:  cfg.Dispatcher.ClaimLease,
			PushTimeout: cfg.Dispatcher.PushTimeout,
		},
		records,
		orders,
		devices,
		message.NewRenderer(loc),
		notifications,
		pushClient,
		alerter,
	)

	return &app{
		cfg:        cfg,
		db:         db,
		devices:    devices,
		reminders:  reminders,
		inbox:      notifications,
		dispatcher: dispatcher,
	}, nil
}

// routes builds the HTTP API on top of the app services.
func (a *app) routes() *ginext.Engine {
	v := validator.New()

	return router.New(router.Handlers{
		Reminders: reminder.NewHandler(a.reminders),
		Inbox:     inbox.NewHandler(a.inbox, v),
		Devices:   device.NewHandler(a.devices, v),
	})
}

func (a *app) Close() {
	closeDB(a.db)
}

func closeDB(db *dbpg.DB) {
	if err := db.Master.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close master DB")
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Error().Err(err).Int("slave", i).Msg("failed to close slave DB")
		}
	}
}

// newAlerter wires the operator channels that have credentials configured.
func newAlerter(cfg config.Alerts) (*alert.Alerter, error) {
	targets, err := alert.ParseTargets(cfg.Recipients)
	if err != nil {
		return nil, err
	}

	notifiers := make(map[string]alert.Notifier)
	if cfg.Email.SMTPHost != "" {
		notifiers["email"] = email.NewClient(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
			cfg.Email.Subject,
		)
	}
	if cfg.Telegram.Token != "" {
		notifiers["telegram"] = telegram.NewClient(cfg.Telegram.Token)
	}

	for _, t := range targets {
		if _, ok := notifiers[t.Channel]; !ok {
			zlog.Logger.Warn().Str("channel", t.Channel).Str("address", t.Address).Msg("alert channel not configured")
		}
	}

	return alert.New(notifiers, targets), nil
}

func defaultWorkerID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "dispatcher"
	}

	return fmt.Sprintf("%s-%d", host, os.Getpid())
}

// connectOrderQueue opens the broker channel and declares the order event queues.
// The returned func closes the channel and the connection.
func connectOrderQueue(cfg config.RabbitMQ) (*queue.OrderQueue, func(), error) {
	conn, err := rabbitmq.Connect(cfg.URL(), cfg.Retries, cfg.Pause)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	q, err := queue.NewOrderQueue(ch, cfg)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare order queue: %w", err)
	}

	closeFn := func() {
		if err := ch.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
		}

		if err := conn.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
		}
	}

	return q, closeFn, nil
}
