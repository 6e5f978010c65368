package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the "transaction" table.
type Transaction struct {
	ID             int64           `db:"id"`
	UserID         int64           `db:"user_id"`
	CreatedAt      time.Time       `db:"created_at"`
	Label          string          `db:"label"`
	Value          decimal.Decimal `db:"value"`
	Currency       string          `db:"currency"`
	ValueConverted decimal.Decimal `db:"value_converted"`
	Description    string          `db:"description"`
}
