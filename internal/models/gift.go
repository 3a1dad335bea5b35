package models

import "time"

// Gift is a reward-redeemable item purchasable once the owning child has
// accrued at least its price.
type Gift struct {
	ID          int64     `json:"id"`
	ChildID     int64     `json:"childId"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	IsPurchased bool      `json:"isPurchased"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
