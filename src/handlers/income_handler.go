package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	store "finote-server/src/db"
	db "finote-server/src/db/sql"
	"finote-server/src/models"
	"finote-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateIncome(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		var req models.CreateIncomeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create income request for user %s: %v", uid, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if req.Source == "" {
			util.RespondError(w, http.StatusBadRequest, "source is required")
			return
		}
		if !util.ValidateAmount(req.Amount) {
			util.RespondError(w, http.StatusBadRequest, "amount must be non-negative")
			return
		}
		if !util.ValidateFrequency(req.Frequency) {
			util.RespondError(w, http.StatusBadRequest, "frequency must be 'monthly', 'weekly' or 'yearly'")
			return
		}
		var nextDate *time.Time
		if req.NextDate != nil && *req.NextDate != "" {
			parsed, err := util.ParseISOTime(*req.NextDate)
			if err != nil {
				util.RespondError(w, http.StatusBadRequest, "invalid next_date")
				return
			}
			nextDate = &parsed
		}

		income := models.Income{
			ID:        uuid.NewString(),
			UserID:    uid,
			Source:    req.Source,
			Amount:    req.Amount,
			Frequency: req.Frequency,
			NextDate:  nextDate,
			CreatedAt: time.Now().UTC(),
		}
		if err := db.CreateIncome(r.Context(), pool, &income); err != nil {
			log.Printf("ERROR: Failed to create income for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Printf("INFO: Created income %s for user %s", income.ID, uid)
		util.RespondOK(w, income)
	}
}

func GetIncomes(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		incomes, err := db.GetIncomesByUser(r.Context(), pool, uid)
		if err != nil {
			log.Printf("ERROR: Failed to get incomes for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if incomes == nil {
			incomes = []models.Income{}
		}
		util.RespondOK(w, incomes)
	}
}

func DeleteIncome(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)
		incomeID := chi.URLParam(r, "income_id")

		if err := db.DeleteIncome(r.Context(), pool, uid, incomeID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				util.RespondError(w, http.StatusNotFound, "Income not found")
				return
			}
			log.Printf("ERROR: Failed to delete income %s for user %s: %v", incomeID, uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Printf("INFO: Deleted income %s for user %s", incomeID, uid)
		util.RespondMessage(w, "Income deleted")
	}
}
