package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mwhitfield/spendlog/internal/auth"
	authStore "github.com/mwhitfield/spendlog/internal/auth/store"
	"github.com/mwhitfield/spendlog/internal/budget"
	budgetStore "github.com/mwhitfield/spendlog/internal/budget/store"
	"github.com/mwhitfield/spendlog/internal/category"
	categoryStore "github.com/mwhitfield/spendlog/internal/category/store"
	"github.com/mwhitfield/spendlog/internal/config"
	"github.com/mwhitfield/spendlog/internal/database"
	"github.com/mwhitfield/spendlog/internal/expense"
	expenseStore "github.com/mwhitfield/spendlog/internal/expense/store"
	"github.com/mwhitfield/spendlog/internal/export"
	spendlogHttp "github.com/mwhitfield/spendlog/internal/http"
	authHandler "github.com/mwhitfield/spendlog/internal/http/auth"
	budgetHandler "github.com/mwhitfield/spendlog/internal/http/budget"
	categoryHandler "github.com/mwhitfield/spendlog/internal/http/category"
	expenseHandler "github.com/mwhitfield/spendlog/internal/http/expense"
	exportHandler "github.com/mwhitfield/spendlog/internal/http/export"
	importHandler "github.com/mwhitfield/spendlog/internal/http/importcsv"
	reportHandler "github.com/mwhitfield/spendlog/internal/http/report"
	suggestHandler "github.com/mwhitfield/spendlog/internal/http/suggest"
	"github.com/mwhitfield/spendlog/internal/importer"
	"github.com/mwhitfield/spendlog/internal/report"
	"github.com/mwhitfield/spendlog/internal/suggest"
	suggestStore "github.com/mwhitfield/spendlog/internal/suggest/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		authService     = auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
		expenseService  = expense.NewService(expenseStore.New(db))
		categoryService = category.NewService(categoryStore.New(db))
		budgetService   = budget.NewService(budgetStore.New(db))
		suggestService  = suggest.NewService(suggestStore.New(db))
		importService   = importer.NewService()
		reportService   = report.NewService(expenseService, budgetService)
		exportService   = export.NewService(expenseService)
	)

	var (
		authH     = authHandler.NewHandler(authService)
		expenseH  = expenseHandler.NewHandler(expenseService)
		categoryH = categoryHandler.NewHandler(categoryService)
		budgetH   = budgetHandler.NewHandler(budgetService, reportService)
		reportH   = reportHandler.NewHandler(reportService)
		importH   = importHandler.NewHandler(importService, expenseService, suggestService)
		exportH   = exportHandler.NewHandler(exportService)
		suggestH  = suggestHandler.NewHandler(suggestService)
	)

	router := spendlogHttp.New(authService, authH, expenseH, categoryH, budgetH, reportH, importH, exportH, suggestH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
