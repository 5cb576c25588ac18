package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an exact currency amount. Amounts are stored and computed as
// decimals, never as binary floats.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// NewMoney parses an ISO 4217 currency code and pairs it with amount.
func NewMoney(amount decimal.Decimal, code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return Money{Amount: amount, Currency: unit}, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}{m.Amount, m.Currency.String()})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
