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

func CreateSubscription(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		var req models.CreateSubscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create subscription request for user %s: %v", uid, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if req.Name == "" {
			util.RespondError(w, http.StatusBadRequest, "name is required")
			return
		}
		if !util.ValidateAmount(req.Amount) {
			util.RespondError(w, http.StatusBadRequest, "amount must be non-negative")
			return
		}
		nextBilling, err := util.ParseISOTime(req.NextBillingDate)
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid next_billing_date")
			return
		}

		subscription := models.Subscription{
			ID:              uuid.NewString(),
			UserID:          uid,
			Name:            req.Name,
			Amount:          req.Amount,
			BillingCycle:    req.BillingCycle,
			NextBillingDate: nextBilling,
			Active:          true,
			CreatedAt:       time.Now().UTC(),
		}
		if err := db.CreateSubscription(r.Context(), pool, &subscription); err != nil {
			log.Printf("ERROR: Failed to create subscription for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		store.InvalidateDashboard(uid)
		log.Printf("INFO: Created subscription %s for user %s", subscription.ID, uid)
		util.RespondOK(w, subscription)
	}
}

func GetSubscriptions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		subs, err := db.GetActiveSubscriptions(r.Context(), pool, uid)
		if err != nil {
			log.Printf("ERROR: Failed to get subscriptions for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if subs == nil {
			subs = []models.Subscription{}
		}
		util.RespondOK(w, subs)
	}
}

// DeleteSubscription cancels a subscription. The record is kept, flipped
// inactive, and drops out of reads and aggregates.
func DeleteSubscription(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)
		subscriptionID := chi.URLParam(r, "subscription_id")

		if err := db.DeactivateSubscription(r.Context(), pool, uid, subscriptionID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				util.RespondError(w, http.StatusNotFound, "Subscription not found")
				return
			}
			log.Printf("ERROR: Failed to cancel subscription %s for user %s: %v", subscriptionID, uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		store.InvalidateDashboard(uid)
		log.Printf("INFO: Cancelled subscription %s for user %s", subscriptionID, uid)
		util.RespondMessage(w, "Subscription cancelled")
	}
}
