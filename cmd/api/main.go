package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-shop-ledger/internal/config"
	"go-shop-ledger/internal/handler"
	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/metrics"
	"go-shop-ledger/internal/model"
	"go-shop-ledger/internal/report"
	"go-shop-ledger/internal/repository"
	"go-shop-ledger/internal/service"
	"go-shop-ledger/internal/ws"
	"go-shop-ledger/pkg/database"
	"go-shop-ledger/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Config & logging
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.IsDev())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	if !cfg.EnvFileLoaded {
		log.Warn(".env file not found, using process environment")
	}

	// 2. Database
	dsn, err := cfg.DSN()
	if err != nil {
		return err
	}
	db, err := database.ConnectDB(dsn, log, cfg.IsDev())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(&model.Item{}, &model.SaleEntry{}, &model.DailySalesSummary{}, &model.BillClosure{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ledgerRepo := repository.NewLedgerRepo(db)
	summaryRepo := repository.NewSummaryRepo(db)
	billRepo := repository.NewBillRepo(db)

	// 3. Ledger hydrated from the stored snapshot
	l, err := loadLedger(ledgerRepo, cfg, log)
	if err != nil {
		return err
	}

	// 4. WebSocket hub & metrics
	wsHub := ws.NewHub(log)
	go wsHub.Run()
	defer wsHub.Stop()
	m := metrics.New(cfg.Metrics.Enabled)

	// 5. Services
	ledgerSvc := service.NewLedgerService(l, ledgerRepo, summaryRepo, billRepo, wsHub, m, log, service.LedgerServiceConfig{
		RevenuePolicy: cfg.Ledger.RevenuePolicy,
		DefaultItems:  cfg.Ledger.DefaultItems,
	})
	var mailer service.Mailer
	if cfg.MailConfigured() {
		mailer = report.NewBrevoMailer(report.BrevoConfig{
			APIURL: cfg.Mail.APIURL,
			APIKey: cfg.Mail.APIKey,
			From:   cfg.Mail.From,
			To:     cfg.Mail.To,
		})
	} else {
		log.Warn("BREVO_API_KEY, EMAIL_FROM or EMAIL_TO missing, closing bills is disabled")
	}
	reportSvc := service.NewReportService(ledgerSvc, billRepo, mailer, wsHub, m, log)
	dashSvc := service.NewDashboardService(ledgerSvc, cfg.Ledger.RevenuePolicy)

	// 6. Fiber
	app := fiber.New(fiber.Config{
		AppName: "Shop Ledger v1.0",
	})
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	systemHandler := handler.NewSystemHandler(ledgerSvc)
	app.Get("/health", systemHandler.Health)
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	handler.RegisterRoutes(app.Group("/api/v1"),
		handler.NewLedgerHandler(ledgerSvc),
		handler.NewDashboardHandler(dashSvc),
		handler.NewReportHandler(reportSvc),
		systemHandler,
	)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}()
	log.Info("server started",
		zap.String("port", cfg.App.Port),
		zap.String("today", ledgerSvc.Today()),
		zap.String("revenue_policy", string(cfg.Ledger.RevenuePolicy)),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// loadLedger restores the stored ledger. An empty database is seeded with
// the default product list.
func loadLedger(repo repository.LedgerRepository, cfg config.Config, log *zap.Logger) (*ledger.Ledger, error) {
	ledgerCfg := ledger.Config{
		AllowBarToMRP: cfg.Ledger.AllowBarToMRP,
		Location:      cfg.App.Location,
	}
	snap, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if len(snap.Items.MRP) == 0 && len(snap.Items.Bar) == 0 && len(snap.SalesByDate) == 0 {
		l := ledger.New(nil, ledgerCfg)
		if err := l.Reset(cfg.Ledger.DefaultItems); err != nil {
			return nil, err
		}
		if err := repo.ReplaceAll(l.Snapshot()); err != nil {
			return nil, fmt.Errorf("seed ledger: %w", err)
		}
		log.Info("seeded empty ledger", zap.Int("items", len(cfg.Ledger.DefaultItems)))
		return l, nil
	}
	store, err := ledger.NewStoreFromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("stored ledger is invalid: %w", err)
	}
	log.Info("ledger loaded",
		zap.Int("mrp_items", len(snap.Items.MRP)),
		zap.Int("bar_items", len(snap.Items.Bar)),
		zap.Int("days", len(snap.SalesByDate)),
	)
	return ledger.New(store, ledgerCfg), nil
}
