package models

import "time"

type Income struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Source    string     `json:"source"`
	Amount    float64    `json:"amount"`
	Frequency string     `json:"frequency"`
	NextDate  *time.Time `json:"next_date"`
	CreatedAt time.Time  `json:"created_at"`
}

type CreateIncomeRequest struct {
	Source    string  `json:"source"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
	NextDate  *string `json:"next_date"`
}
