package models

import (
	"testing"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUserMapping_AddressColumn(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	row := FromDomainUser(domain.User{UserID: 3, OrganizationID: 1, Address: "+573001234567", CreatedAt: time.Date(2026, 1, 1, 7, 0, 0, 0, bogota)})

	assert.Equal(t, "+573001234567", row.WhatsappPhone)
	assert.Equal(t, time.UTC, row.CreatedAt.Location())
	assert.Equal(t, "+573001234567", ToDomainUser(row).Address)
}

func TestTransactionMapping(t *testing.T) {
	d := domain.Transaction{
		TransactionID: 9, UserID: 3, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Label: "Coffee", Value: decimal.RequireFromString("42.50"), Currency: "USD",
		ValueConverted: decimal.RequireFromString("39.10"), Description: "team meeting",
	}
	assert.Equal(t, d, ToDomainTransaction(FromDomainTransaction(d)))
}
