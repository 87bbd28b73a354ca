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

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		var req models.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request for user %s: %v", uid, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if !util.ValidateTransactionType(req.Type) {
			util.RespondError(w, http.StatusBadRequest, "type must be 'income' or 'expense'")
			return
		}
		if !util.ValidateAmount(req.Amount) {
			util.RespondError(w, http.StatusBadRequest, "amount must be non-negative")
			return
		}
		if req.Category == "" {
			util.RespondError(w, http.StatusBadRequest, "category is required")
			return
		}
		date, err := util.ParseISOTime(req.Date)
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid date")
			return
		}

		transaction := models.Transaction{
			ID:          uuid.NewString(),
			UserID:      uid,
			Type:        req.Type,
			Amount:      req.Amount,
			Category:    req.Category,
			Description: req.Description,
			Date:        date,
			CreatedAt:   time.Now().UTC(),
		}
		if err := db.CreateTransaction(r.Context(), pool, &transaction); err != nil {
			log.Printf("ERROR: Failed to create transaction for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		store.InvalidateDashboard(uid)
		log.Printf("INFO: Created transaction %s for user %s", transaction.ID, uid)
		util.RespondOK(w, transaction)
	}
}

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		transactions, err := db.GetTransactionsByUser(r.Context(), pool, uid)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}
		util.RespondOK(w, transactions)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)
		transactionID := chi.URLParam(r, "transaction_id")

		if err := db.DeleteTransaction(r.Context(), pool, uid, transactionID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				util.RespondError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			log.Printf("ERROR: Failed to delete transaction %s for user %s: %v", transactionID, uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		store.InvalidateDashboard(uid)
		log.Printf("INFO: Deleted transaction %s for user %s", transactionID, uid)
		util.RespondMessage(w, "Transaction deleted")
	}
}
