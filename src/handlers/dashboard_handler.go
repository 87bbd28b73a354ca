package handlers

import (
	"log"
	"net/http"

	store "finote-server/src/db"
	db "finote-server/src/db/sql"
	"finote-server/src/finance"
	"finote-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetDashboard aggregates the caller's records into the dashboard summary.
// Summaries are cached per user; every transaction or subscription write
// invalidates the entry.
func GetDashboard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		cacheKey := store.DashboardCacheKey(uid)
		if cached, found := store.GetDashboardCache(cacheKey); found {
			if summary, ok := cached.(finance.DashboardSummary); ok {
				util.RespondOK(w, summary)
				return
			}
		}

		transactions, err := db.GetTransactionsByUser(r.Context(), pool, uid)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for dashboard, user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		subscriptions, err := db.GetActiveSubscriptions(r.Context(), pool, uid)
		if err != nil {
			log.Printf("ERROR: Failed to get subscriptions for dashboard, user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		summary := finance.Summarize(transactions, subscriptions)
		store.SetDashboardCache(cacheKey, summary)
		util.RespondOK(w, summary)
	}
}
