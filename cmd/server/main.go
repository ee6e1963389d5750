package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/premiumhub/pkg/blob"
	"github.com/dmitrymomot/premiumhub/pkg/config"
	"github.com/dmitrymomot/premiumhub/pkg/httpserver"
	"github.com/dmitrymomot/premiumhub/pkg/logger"
	"github.com/dmitrymomot/premiumhub/pkg/mongo"
	"github.com/dmitrymomot/premiumhub/pkg/pg"
	"github.com/dmitrymomot/premiumhub/pkg/razorpay"
	"github.com/dmitrymomot/premiumhub/pkg/redis"
	"github.com/dmitrymomot/premiumhub/pkg/requestid"
	"github.com/dmitrymomot/premiumhub/pkg/scheduler"
	"github.com/dmitrymomot/premiumhub/pkg/telegram"
	"github.com/dmitrymomot/premiumhub/svc/membership"
	"github.com/dmitrymomot/premiumhub/svc/membership/store"
)

type scheduleConfig struct {
	Hour     int           `env:"REMINDER_SCHEDULE_HOUR" envDefault:"9"`
	Minute   int           `env:"REMINDER_SCHEDULE_MINUTE" envDefault:"0"`
	Interval time.Duration `env:"REMINDER_INTERVAL"` // overrides the daily slot when set
}

func (c scheduleConfig) schedule() scheduler.Schedule {
	if c.Interval > 0 {
		return scheduler.Every(c.Interval)
	}
	return scheduler.DailyAt(c.Hour, c.Minute)
}

type appConfig struct {
	Log        logger.Config
	HTTP       httpserver.Config
	Membership membership.Config
	Razorpay   razorpay.Config
	Telegram   telegram.Config
	Mongo      mongo.Config
	Postgres   pg.Config
	Redis      redis.Config
	Local      blob.LocalConfig
	S3         blob.S3Config
	Ledger     store.LedgerConfig
	Schedule   scheduleConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.NewFromConfig(cfg.Log, logger.WithContextExtractors(requestid.LoggerExtractor()))
	logger.SetAsDefault(log)

	backend, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.close()

	ledger, ledgerChecks, closeLedger, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLedger()

	rzp, err := razorpay.NewClient(cfg.Razorpay)
	if err != nil {
		return err
	}
	tg, err := telegram.NewClient(cfg.Telegram)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := membership.NewEngine(backend.store, tg, membership.NewRazorpayGateway(rzp), cfg.Membership,
		membership.WithLedger(ledger),
		membership.WithLogger(log),
		membership.WithMetrics(membership.NewMetrics(reg)),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware())
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, append(backend.checks, ledgerChecks...)...))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	membership.NewHandler(engine, cfg.Membership, log).Routes(r)

	sched := scheduler.New(scheduler.WithLogger(log))
	if err := sched.Add("membership.reminders", cfg.Schedule.schedule(), func(ctx context.Context) error {
		_, err := engine.Scan(ctx)
		return err
	}); err != nil {
		return err
	}

	server := httpserver.New(cfg.HTTP, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx, r) })
	g.Go(func() error { return sched.Run(ctx) })

	log.InfoContext(ctx, "premiumhub started",
		slog.String("store", backend.name),
		slog.String("reminders", cfg.Schedule.schedule().String()),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("premiumhub stopped")
	return nil
}
