package models

import "time"

// User is a row of the "user" table. WhatsappPhone holds the normalized chat address.
type User struct {
	ID             int64     `db:"id"`
	OrganizationID int64     `db:"organization_id"`
	CreatedAt      time.Time `db:"created_at"`
	WhatsappPhone  string    `db:"whatsapp_phone"`
	Name           string    `db:"name"`
	IsAdmin        bool      `db:"is_admin"`
}
