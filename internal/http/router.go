package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authSvc "github.com/mwhitfield/spendlog/internal/auth"
	authHandler "github.com/mwhitfield/spendlog/internal/http/auth"
	"github.com/mwhitfield/spendlog/internal/http/budget"
	"github.com/mwhitfield/spendlog/internal/http/category"
	"github.com/mwhitfield/spendlog/internal/http/expense"
	"github.com/mwhitfield/spendlog/internal/http/export"
	"github.com/mwhitfield/spendlog/internal/http/importcsv"
	"github.com/mwhitfield/spendlog/internal/http/report"
	"github.com/mwhitfield/spendlog/internal/http/suggest"
)

func New(
	authService *authSvc.Service,
	authV1 *authHandler.Handler,
	expensesV1 *expense.Handler,
	categoriesV1 *category.Handler,
	budgetsV1 *budget.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	suggestV1 *suggest.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate(authService))

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				expensesV1.Routes(r)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				categoriesV1.Routes(r)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				budgetsV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)

			r.Route("/import", importV1.Routes)

			r.Route("/export", exportV1.Routes)

			r.Route("/suggest", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				suggestV1.Routes(r)
			})
		})
	})

	return router
}
