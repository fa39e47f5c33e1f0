package domain

// User is a managed account. IsAdmin is stored as data only.
type User struct {
	ID      int64
	Name    string
	Email   string
	IsAdmin bool
}
