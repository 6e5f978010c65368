package models

import "time"

// Organization is a row of the "organization" table.
type Organization struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`
	Currency  string    `db:"currency"`
	Language  string    `db:"language"`
}
