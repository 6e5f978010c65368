package dto

import (
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
)

// RegisterUserRequest defines data for authorizing a chat address.
type RegisterUserRequest struct {
	Address string `json:"address" binding:"required,chataddress"`
	Name    string `json:"name" binding:"required,max=120"`
	IsAdmin bool   `json:"isAdmin"`
}

// ToCmd converts the request to the service command for the given organization.
func (r RegisterUserRequest) ToCmd(organizationID int64) portssvc.RegisterUserCmd {
	return portssvc.RegisterUserCmd{
		OrganizationID: organizationID,
		Address:        r.Address,
		Name:           r.Name,
		IsAdmin:        r.IsAdmin,
	}
}

// UpdateUserRequest defines the data allowed for updating a user.
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// UserResponse defines the user data returned by the API.
type UserResponse struct {
	UserID         int64     `json:"userID"`
	OrganizationID int64     `json:"organizationID"`
	Address        string    `json:"address"`
	Name           string    `json:"name"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		OrganizationID: u.OrganizationID,
		Address:        u.Address,
		Name:           u.Name,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
	}
}
