package handlers

import (
	"errors"
	"log"
	"net/http"

	store "finote-server/src/db"
	db "finote-server/src/db/sql"
	"finote-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetMe returns the caller's user record, creating it on first sight.
func GetMe(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.Context().Value("uid").(string)
		email := r.Context().Value("email").(string)

		user, err := db.GetUserByUID(r.Context(), pool, uid)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("ERROR: Failed to load user %s: %v", uid, err)
				util.RespondError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if email == "" {
				email = "unknown"
			}
			user, err = db.CreateUser(r.Context(), pool, uid, email)
			if err != nil {
				log.Printf("ERROR: Failed to create user %s: %v", uid, err)
				util.RespondError(w, http.StatusInternalServerError, "internal error")
				return
			}
			log.Printf("INFO: Created user record for uid %s", uid)
		}

		util.RespondOK(w, user)
	}
}
