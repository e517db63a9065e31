// Package records provides a fluent builder for test records.
//
// Example usage:
//
//	recs := records.NewBuilder().
//		WithFixture(records.FixtureMarch).
//		Expense("Food", 12.50, "2024-03-10", "Lunch").
//		Build()
package records

import "github.com/Veraticus/spice-tracker/internal/model"

// Builder collects records and numbers them in the order they were added.
type Builder struct {
	records []model.Record
	nextID  int64
}

// NewBuilder creates an empty builder whose first record gets id 1.
func NewBuilder() *Builder {
	return &Builder{nextID: 1}
}

// StartingAt sets the id given to the next record.
func (b *Builder) StartingAt(id int64) *Builder {
	b.nextID = id
	return b
}

// Expense adds an expense record.
func (b *Builder) Expense(category string, amount float64, date, desc string) *Builder {
	return b.add(model.TypeExpense, category, amount, date, desc)
}

// Income adds an income record.
func (b *Builder) Income(category string, amount float64, date, desc string) *Builder {
	return b.add(model.TypeIncome, category, amount, date, desc)
}

// WithFixture adds every record of a fixture.
func (b *Builder) WithFixture(f Fixture) *Builder {
	for _, r := range f.Records {
		b.add(r.Type, r.Category, r.Amount, string(r.Date), r.Desc)
	}
	return b
}

// Build returns a copy of the collected records.
func (b *Builder) Build() []model.Record {
	return append([]model.Record(nil), b.records...)
}

// Fields returns the collected records without ids, ready for import.
func (b *Builder) Fields() []model.Fields {
	fields := make([]model.Fields, len(b.records))
	for i, r := range b.records {
		fields[i] = r.Fields()
	}
	return fields
}

func (b *Builder) add(t model.TransactionType, category string, amount float64, date, desc string) *Builder {
	b.records = append(b.records, model.Record{
		ID:       b.nextID,
		Type:     t,
		Category: category,
		Amount:   amount,
		Date:     model.Date(date),
		Desc:     desc,
	})
	b.nextID++
	return b
}
