package types

// User represents an account persisted in the store.
type User struct {
	// ID is the unique identifier assigned by the store.
	ID int `json:"id" db:"id"`

	// FirstName is the user's given name.
	FirstName string `json:"first_name" db:"first_name"`

	// LastName is the user's family name.
	LastName string `json:"last_name" db:"last_name"`

	// Username is the unique login name chosen by the user.
	Username string `json:"user_name" db:"user_name"`

	// PasswordDigest stores the peppered bcrypt hash of the user's
	// password. This field is never exposed in API responses.
	PasswordDigest string `json:"-" db:"password_digest"`
}

// NewUser carries raw signup input. The plaintext password exists only
// in memory and is never persisted.
type NewUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"user_name"`
	Password  string `json:"password"`
}
