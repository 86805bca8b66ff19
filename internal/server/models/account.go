// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered identity. Password holds the bcrypt digest once the
// account has been stored; it is never the plaintext password.
type Account struct {
	ID        int64
	Name      string
	Username  string
	Avatar    string
	Password  string
	CreatedAt time.Time
}
