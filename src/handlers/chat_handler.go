package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"finote-server/src/chat"
	store "finote-server/src/db"
	db "finote-server/src/db/sql"
	"finote-server/src/models"
	"finote-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Chat(svc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		var req models.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode chat request for user %s: %v", uid, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if req.Message == "" {
			util.RespondError(w, http.StatusBadRequest, "message is required")
			return
		}

		reply, err := svc.SendMessage(r.Context(), uid, req.Message, req.ConversationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				util.RespondError(w, http.StatusNotFound, "Conversation not found")
				return
			}
			log.Printf("ERROR: Chat failed for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		util.RespondOK(w, reply)
	}
}

func GetConversations(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)

		convs, err := db.GetConversationsByUser(r.Context(), pool, uid, 50)
		if err != nil {
			log.Printf("ERROR: Failed to get conversations for user %s: %v", uid, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if convs == nil {
			convs = []models.Conversation{}
		}
		util.RespondOK(w, convs)
	}
}
