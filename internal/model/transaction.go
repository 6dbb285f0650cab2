package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dersalik/fibscope/internal/id"
)

// TypeMoneyBoxTransfer marks a transfer between the owner's own account and
// one of its money boxes.
const TypeMoneyBoxTransfer = "MONEY_BOX_TRANSFER"

// Transaction represents a parsed FIB export row.
type Transaction struct {
	ID           uuid.UUID // uuid.Nil when absent
	Counterparty string
	Amount       Money // negative = outflow, positive = inflow
	Fee          Money
	BalanceAfter Money // zero when the export omits it
	Type         string
	Date         time.Time     // zero when unset
	Time         time.Duration // time of day, zero when unset
	Status       string
	ExternalID   uuid.UUID
	Note         string
}

// HasDate reports whether the row carried a date.
func (t Transaction) HasDate() bool { return !t.Date.IsZero() }

// Timestamp combines Date and Time.
func (t Transaction) Timestamp() time.Time { return t.Date.Add(t.Time) }

// IsInternal reports whether the transaction moves money between the owner's own accounts.
func (t Transaction) IsInternal() bool { return t.Type == TypeMoneyBoxTransfer }

// MarshalJSON renders the transaction using the export field formats.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           string `json:"id,omitempty"`
		Counterparty string `json:"counterparty"`
		Amount       string `json:"amount"`
		Fee          string `json:"fee"`
		BalanceAfter string `json:"balance_after"`
		Type         string `json:"type"`
		Date         string `json:"date"`
		Time         string `json:"time"`
		Status       string `json:"status"`
		ExternalID   string `json:"transaction_id,omitempty"`
		Note         string `json:"note,omitempty"`
	}{
		ID:           id.Format(t.ID),
		Counterparty: t.Counterparty,
		Amount:       t.Amount.Exact(),
		Fee:          t.Fee.Exact(),
		BalanceAfter: t.BalanceAfter.Exact(),
		Type:         t.Type,
		Date:         FormatDate(t.Date),
		Time:         FormatClockExact(t.Time),
		Status:       t.Status,
		ExternalID:   id.Format(t.ExternalID),
		Note:         t.Note,
	})
}
