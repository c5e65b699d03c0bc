package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/anindyar/kasbon/internal/auth"
	"github.com/anindyar/kasbon/internal/categorize"
	categorizeStore "github.com/anindyar/kasbon/internal/categorize/store"
	"github.com/anindyar/kasbon/internal/config"
	"github.com/anindyar/kasbon/internal/database"
	"github.com/anindyar/kasbon/internal/export"
	kasbonHttp "github.com/anindyar/kasbon/internal/http"
	authHandler "github.com/anindyar/kasbon/internal/http/auth"
	categorizeHandler "github.com/anindyar/kasbon/internal/http/categorize"
	expenseHandler "github.com/anindyar/kasbon/internal/http/expense"
	exportHandler "github.com/anindyar/kasbon/internal/http/export"
	importHandler "github.com/anindyar/kasbon/internal/http/importcsv"
	journalHandler "github.com/anindyar/kasbon/internal/http/journal"
	productHandler "github.com/anindyar/kasbon/internal/http/product"
	purchaseHandler "github.com/anindyar/kasbon/internal/http/purchase"
	summaryHandler "github.com/anindyar/kasbon/internal/http/summary"
	txHandler "github.com/anindyar/kasbon/internal/http/transaction"
	"github.com/anindyar/kasbon/internal/importer"
	"github.com/anindyar/kasbon/internal/ledger"
	ledgerStore "github.com/anindyar/kasbon/internal/ledger/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var (
		store    ledger.Store
		catStore categorize.Repository
	)

	if cfg.UsePostgres() {
		db, err := database.Open(ctx, cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		pg, err := ledgerStore.NewPostgres(ctx, db)
		if err != nil {
			slog.Error("failed to prepare ledger store", "error", err)
			os.Exit(1)
		}

		cs, err := categorizeStore.NewPostgres(ctx, db)
		if err != nil {
			slog.Error("failed to prepare categorize store", "error", err)
			os.Exit(1)
		}

		store, catStore = pg, cs
	} else {
		slog.Info("no database configured, using in-memory store")

		store, catStore = ledgerStore.NewMemory(), categorizeStore.NewMemory()
	}

	authService, err := auth.NewService(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		slog.Error("failed to set up auth", "error", err)
		os.Exit(1)
	}

	var (
		ledgerService     = ledger.NewService(store)
		categorizeService = categorize.NewService(catStore)
		importService     = importer.NewService()
		exportService     = export.NewService(ledgerService)
	)

	var (
		authH       = authHandler.NewHandler(authService)
		productH    = productHandler.NewHandler(ledgerService)
		txH         = txHandler.NewHandler(ledgerService)
		purchaseH   = purchaseHandler.NewHandler(ledgerService)
		expenseH    = expenseHandler.NewHandler(ledgerService)
		journalH    = journalHandler.NewHandler(ledgerService)
		summaryH    = summaryHandler.NewHandler(ledgerService)
		importH     = importHandler.NewHandler(importService, ledgerService)
		categorizeH = categorizeHandler.NewHandler(categorizeService)
		exportH     = exportHandler.NewHandler(exportService)
	)

	router := kasbonHttp.New(authService, authH, productH, txH, purchaseH, expenseH, journalH, summaryH, importH, categorizeH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
