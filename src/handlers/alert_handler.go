package handlers

import (
	"errors"
	"log"
	"net/http"

	store "finote-server/src/db"
	db "finote-server/src/db/sql"
	"finote-server/src/models"
	"finote-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAlerts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		alerts, err := db.GetAlertsByUser(r.Context(), pool, uid, 50)
		if err != nil {
			log.Printf("ERROR: Failed to get alerts for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if alerts == nil {
			alerts = []models.Alert{}
		}
		util.RespondOK(w, alerts)
	}
}

func MarkAlertRead(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)
		alertID := chi.URLParam(r, "alert_id")

		if err := db.MarkAlertRead(r.Context(), pool, uid, alertID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				util.RespondError(w, http.StatusNotFound, "Alert not found")
				return
			}
			log.Printf("ERROR: Failed to mark alert %s read for user %s: %v", alertID, uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		util.RespondOK(w, nil)
	}
}
