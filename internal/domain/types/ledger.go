package types

import "time"

// Direction tells whether a ledger entry adds to or removes from a balance.
type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

// Transaction is an append-only ledger entry. Amount is always positive.
type Transaction struct {
	ID           TxID      `json:"id"`
	Direction    Direction `json:"direction"`
	Amount       int64     `json:"amount"`
	Description  string    `json:"description"`
	Counterparty UserID    `json:"counterparty,omitempty"`
	At           time.Time `json:"at"`
}

// Signed returns the amount with the sign implied by Direction.
func (t Transaction) Signed() int64 {
	if t.Direction == Debit {
		return -t.Amount
	}
	return t.Amount
}
