package models

import "time"

type Subscription struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Amount          float64   `json:"amount"`
	BillingCycle    string    `json:"billing_cycle"`
	NextBillingDate time.Time `json:"next_billing_date"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateSubscriptionRequest struct {
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	BillingCycle    string  `json:"billing_cycle"`
	NextBillingDate string  `json:"next_billing_date"`
}
