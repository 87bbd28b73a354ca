package models

import "time"

type User struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
