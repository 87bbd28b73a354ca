package handlers

import (
	"log"
	"net/http"

	db "finote-server/src/db/sql"
	"finote-server/src/finance"
	"finote-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SimulateTwin runs the deterministic 12-month projections over the caller's
// declared incomes, transactions, and active subscriptions.
func SimulateTwin(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		incomes, err := db.GetIncomesByUser(r.Context(), pool, uid)
		if err != nil {
			log.Printf("ERROR: Failed to get incomes for twin, user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		transactions, err := db.GetTransactionsByUser(r.Context(), pool, uid)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for twin, user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		subscriptions, err := db.GetActiveSubscriptions(r.Context(), pool, uid)
		if err != nil {
			log.Printf("ERROR: Failed to get subscriptions for twin, user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		util.RespondOK(w, finance.ProjectTwin(incomes, transactions, subscriptions))
	}
}
