package dto

import (
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
)

// CreateOrganizationRequest defines data for onboarding a new organization.
type CreateOrganizationRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Currency string `json:"currency" binding:"required,iso4217"`
	Language string `json:"language" binding:"omitempty,langcode"`
}

// ToCmd converts the request to the service command. Language defaults to EN.
func (r CreateOrganizationRequest) ToCmd() portssvc.CreateOrganizationCmd {
	lang := r.Language
	if lang == "" {
		lang = string(domain.LanguageEN)
	}
	return portssvc.CreateOrganizationCmd{Name: r.Name, Currency: r.Currency, Language: lang}
}

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID int64     `json:"organizationID"`
	Name           string    `json:"name"`
	Currency       string    `json:"currency"`
	Language       string    `json:"language"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToOrganizationResponse converts domain.Organization to DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Currency:       o.Currency,
		Language:       string(o.Language),
		CreatedAt:      o.CreatedAt,
	}
}
