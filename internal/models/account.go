package models

// Account holds the balance linked one-to-one to a User.
// Created in the same transaction as its User; never mutated afterwards.
type Account struct {
	ID      string  `json:"id"`
	UserID  string  `json:"userId"`
	Balance float64 `json:"balance"` // non-negative
}
