package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/wisnuadi/splitledger/internal/auth"
	"github.com/wisnuadi/splitledger/internal/balance"
	"github.com/wisnuadi/splitledger/internal/category"
	"github.com/wisnuadi/splitledger/internal/expense"
	"github.com/wisnuadi/splitledger/internal/group"
	"github.com/wisnuadi/splitledger/internal/transport/middleware"
	"github.com/wisnuadi/splitledger/internal/transport/swagger"
	"github.com/wisnuadi/splitledger/internal/user"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	categoryHandler *category.Handler,
	expenseHandler *expense.Handler,
	balanceHandler *balance.Handler,
	groupHandler *group.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Categories are a public lookup table.
		r.Get("/categories", categoryHandler.GetCategories)

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.CreateExpense)
				er.Get("/", expenseHandler.ListExpenses)
				er.Get("/{id}", expenseHandler.GetExpense)
				er.Delete("/{id}", expenseHandler.DeleteExpense)
				er.Patch("/{id}/splits/{splitID}/paid", expenseHandler.MarkSplitPaid)
			})

			pr.Get("/balances", balanceHandler.GetBalances)

			pr.Route("/groups", func(gr chi.Router) {
				gr.Post("/", groupHandler.CreateGroup)
				gr.Get("/", groupHandler.GetMyGroups)
				gr.Get("/{groupID}/members", groupHandler.GetMembers)
				gr.Post("/{groupID}/members", groupHandler.AddMember)
			})
		})
	})
}
