package domain

import "time"

// User is an authorized chat participant. Address is the normalized chat
// address (E.164 style phone number) and is unique across all organizations.
type User struct {
	UserID         int64     `json:"userID"`
	OrganizationID int64     `json:"organizationID"`
	CreatedAt      time.Time `json:"createdAt"`
	Address        string    `json:"address"`
	Name           string    `json:"name"`
	IsAdmin        bool      `json:"isAdmin"`
}
