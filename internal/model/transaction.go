// Package model defines the core domain models used throughout the application.
package model

import "time"

// Record is a single income or expense entry.
type Record struct {
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Desc     string          `json:"desc"`
	Date     Date            `json:"date"`
	ID       int64           `json:"id"`
	Amount   float64         `json:"amount"`
}

// Fields holds everything a user may set on a record. The id is assigned
// by the ledger and never changes.
type Fields struct {
	Type     TransactionType
	Category string
	Desc     string
	Date     Date
	Amount   float64
}

// SignedAmount returns the amount with the sign implied by the record type:
// negative for expenses, positive for income.
func (r Record) SignedAmount() float64 {
	if r.Type == TypeExpense {
		return -r.Amount
	}
	return r.Amount
}

// Fields returns the user-editable part of the record.
func (r Record) Fields() Fields {
	return Fields{
		Type:     r.Type,
		Category: r.Category,
		Desc:     r.Desc,
		Date:     r.Date,
		Amount:   r.Amount,
	}
}

// WithType switches the record type. The category is reset to the new type's
// default unless it already belongs to the new type's set.
func (f Fields) WithType(t TransactionType) Fields {
	f.Type = t
	if !IsValidCategory(t, f.Category) {
		f.Category = DefaultCategory(t)
	}
	return f
}

// Normalize fills an empty category with the type's default.
func (f Fields) Normalize() Fields {
	if f.Category == "" {
		f.Category = DefaultCategory(f.Type)
	}
	return f
}

// Validate checks amount and date first, in the order users see messages
// for them, then the type and category invariants.
func (f Fields) Validate(now time.Time) error {
	if err := Validate(f.Amount, f.Date, now); err != nil {
		return err
	}
	if !f.Type.Valid() {
		return ErrInvalidType
	}
	if !IsValidCategory(f.Type, f.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// Record builds a record with the given id.
func (f Fields) Record(id int64) Record {
	return Record{
		ID:       id,
		Desc:     f.Desc,
		Type:     f.Type,
		Category: f.Category,
		Amount:   f.Amount,
		Date:     f.Date,
	}
}
