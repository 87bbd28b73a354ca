package api

import (
	"finote-server/src/auth"
	"finote-server/src/chat"
	"finote-server/src/config"
	"finote-server/src/handlers"
	"finote-server/src/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, chatService *chat.Service, verifier auth.TokenVerifier, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthMiddleware(verifier, cfg.AuthDevFallback)).Group(func(r chi.Router) {
			// User
			r.Get("/auth/me", handlers.GetMe(pool))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetTransactions(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

			// Income
			r.Post("/income", handlers.CreateIncome(pool))
			r.Get("/income", handlers.GetIncomes(pool))
			r.Delete("/income/{income_id}", handlers.DeleteIncome(pool))

			// Subscriptions
			r.Post("/subscriptions", handlers.CreateSubscription(pool))
			r.Get("/subscriptions", handlers.GetSubscriptions(pool))
			r.Delete("/subscriptions/{subscription_id}", handlers.DeleteSubscription(pool))

			// Dashboard
			r.Get("/dashboard", handlers.GetDashboard(pool))

			// AI
			r.Post("/ai/chat", handlers.Chat(chatService))
			r.Get("/ai/conversations", handlers.GetConversations(pool))
			r.Post("/ai/twin", handlers.SimulateTwin(pool))

			// Alerts
			r.Get("/alerts", handlers.GetAlerts(pool))
			r.Post("/alerts/{alert_id}/read", handlers.MarkAlertRead(pool))
		})
	})

	return r
}
