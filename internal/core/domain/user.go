package domain

// User represents a customer of the bank.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"` // Unique, used for login and transfer destination lookup
	PasswordHash string `json:"-"`
	AuditFields
}
