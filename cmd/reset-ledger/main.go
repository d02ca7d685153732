package main

import (
	"flag"
	"fmt"
	"os"

	"go-shop-ledger/internal/config"
	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/model"
	"go-shop-ledger/internal/repository"
	"go-shop-ledger/pkg/database"
	"go-shop-ledger/pkg/logger"

	"go.uber.org/zap"
)

// reset-ledger wipes the stored ledger and re-seeds both pools with the
// default product list.
func main() {
	keepBills := flag.Bool("keep-bills", false, "keep bill closure records")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Level, cfg.IsDev())
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	dsn, err := cfg.DSN()
	if err != nil {
		log.Fatal("database not configured", zap.Error(err))
	}
	db, err := database.ConnectDB(dsn, log, false)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.Item{}, &model.SaleEntry{}, &model.DailySalesSummary{}, &model.BillClosure{}); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	l := ledger.New(nil, ledger.Config{Location: cfg.App.Location})
	if err := l.Reset(cfg.Ledger.DefaultItems); err != nil {
		log.Fatal("build default ledger", zap.Error(err))
	}
	if err := repository.NewLedgerRepo(db).ReplaceAll(l.Snapshot()); err != nil {
		log.Fatal("write ledger", zap.Error(err))
	}
	if err := repository.NewSummaryRepo(db).DeleteAll(); err != nil {
		log.Fatal("clear daily summaries", zap.Error(err))
	}
	if !*keepBills {
		if err := repository.NewBillRepo(db).DeleteAll(); err != nil {
			log.Fatal("clear bill closures", zap.Error(err))
		}
	}

	log.Info("ledger reset",
		zap.Strings("items", cfg.Ledger.DefaultItems),
		zap.Bool("bills_kept", *keepBills),
	)
}
