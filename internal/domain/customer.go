package domain

import "time"

// Customer is a business contact tracked for sales and balances.
// Balance is kept in minor currency units (cents).
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Notes     string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
