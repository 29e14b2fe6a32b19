package domain

// AccountType distinguishes which account collection a reference belongs to.
type AccountType string

const (
	AccountTypeUser   AccountType = "User"
	AccountTypeWorker AccountType = "Employee"
)

// WorkerRole enumerates employee roles.
type WorkerRole string

const (
	WorkerRoleAdmin WorkerRole = "admin"
	WorkerRoleStaff WorkerRole = "staff"
)
