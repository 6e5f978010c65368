package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Stored amounts are NUMERIC(20,8): at most 12 integer and 8 fractional digits.
const (
	MaxIntegerDigits  = 12
	MaxFractionDigits = 8
)

var amountUpperBound = decimal.New(1, MaxIntegerDigits)

// CheckStorableAmount reports an error when v cannot be stored exactly.
func CheckStorableAmount(v decimal.Decimal) error {
	if !v.Equal(v.Truncate(MaxFractionDigits)) {
		return fmt.Errorf("amount %s has more than %d decimal places", v, MaxFractionDigits)
	}
	if v.Abs().Cmp(amountUpperBound) >= 0 {
		return fmt.Errorf("amount %s has more than %d integer digits", v, MaxIntegerDigits)
	}
	return nil
}

// Transaction is an append-only ledger line. ValueConverted is the value in the
// owning organization's base currency at the rate in effect on CreatedAt and is
// never recomputed.
type Transaction struct {
	TransactionID  int64           `json:"transactionID"`
	UserID         int64           `json:"userID"`
	CreatedAt      time.Time       `json:"createdAt"`
	Label          string          `json:"label"`
	Value          decimal.Decimal `json:"value"`
	Currency       string          `json:"currency"`
	ValueConverted decimal.Decimal `json:"valueConverted"`
	Description    string          `json:"description"`
}

// Validate checks the invariants a transaction must satisfy before it is stored.
func (t Transaction) Validate() error {
	if t.UserID == 0 {
		return errors.New("transaction must belong to a user")
	}
	if !IsWellFormedCurrency(t.Currency) {
		return errors.New("transaction currency must be a 3-letter code")
	}
	if !t.Value.IsPositive() {
		return errors.New("transaction value must be positive")
	}
	if !t.ValueConverted.IsPositive() {
		return errors.New("converted value must be positive")
	}
	if err := CheckStorableAmount(t.Value); err != nil {
		return fmt.Errorf("transaction value: %w", err)
	}
	if err := CheckStorableAmount(t.ValueConverted); err != nil {
		return fmt.Errorf("converted value: %w", err)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("transaction creation time is required")
	}
	return nil
}

// TransactionFilter selects transactions either for a single user or for every
// user of an organization, created within [From, To].
type TransactionFilter struct {
	UserID         *int64
	OrganizationID *int64
	From           time.Time
	To             time.Time
}

// Validate requires exactly one owner selector and an ordered time range.
func (f TransactionFilter) Validate() error {
	if (f.UserID == nil) == (f.OrganizationID == nil) {
		return errors.New("filter needs exactly one of user or organization")
	}
	if f.To.Before(f.From) {
		return errors.New("filter range end precedes start")
	}
	return nil
}

// Contains reports whether t falls inside the filter's time range.
func (f TransactionFilter) Contains(t time.Time) bool {
	return !t.Before(f.From) && !t.After(f.To)
}
