package domain

import "time"

// Worker models an employee account (admin or staff).
type Worker struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         WorkerRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
