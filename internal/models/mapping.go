package models

import "github.com/SscSPs/chatledger/internal/core/domain"

// ToDomainOrganization converts a row into the domain type.
func ToDomainOrganization(m Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.ID,
		CreatedAt:      m.CreatedAt.UTC(),
		Name:           m.Name,
		Currency:       m.Currency,
		Language:       domain.Language(m.Language),
	}
}

// FromDomainOrganization converts a domain organization into a row.
func FromDomainOrganization(d domain.Organization) Organization {
	return Organization{
		ID:        d.OrganizationID,
		CreatedAt: d.CreatedAt.UTC(),
		Name:      d.Name,
		Currency:  d.Currency,
		Language:  string(d.Language),
	}
}

// ToDomainUser converts a row into the domain type.
func ToDomainUser(m User) domain.User {
	return domain.User{
		UserID:         m.ID,
		OrganizationID: m.OrganizationID,
		CreatedAt:      m.CreatedAt.UTC(),
		Address:        m.WhatsappPhone,
		Name:           m.Name,
		IsAdmin:        m.IsAdmin,
	}
}

// FromDomainUser converts a domain user into a row.
func FromDomainUser(d domain.User) User {
	return User{
		ID:             d.UserID,
		OrganizationID: d.OrganizationID,
		CreatedAt:      d.CreatedAt.UTC(),
		WhatsappPhone:  d.Address,
		Name:           d.Name,
		IsAdmin:        d.IsAdmin,
	}
}

// ToDomainTransaction converts a row into the domain type.
func ToDomainTransaction(m Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.ID,
		UserID:         m.UserID,
		CreatedAt:      m.CreatedAt.UTC(),
		Label:          m.Label,
		Value:          m.Value,
		Currency:       m.Currency,
		ValueConverted: m.ValueConverted,
		Description:    m.Description,
	}
}

// FromDomainTransaction converts a domain transaction into a row.
func FromDomainTransaction(d domain.Transaction) Transaction {
	return Transaction{
		ID:             d.TransactionID,
		UserID:         d.UserID,
		CreatedAt:      d.CreatedAt.UTC(),
		Label:          d.Label,
		Value:          d.Value,
		Currency:       d.Currency,
		ValueConverted: d.ValueConverted,
		Description:    d.Description,
	}
}
