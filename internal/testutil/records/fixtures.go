package records

import "github.com/Veraticus/spice-tracker/internal/model"

// Fixture is a named set of records for a common scenario.
type Fixture struct {
	Name    string
	Records []model.Record
}

// FixtureMarch is one salary, one freelance job and two expenses in
// March 2024. Newest first the ids run 2, 4, 3, 1.
var FixtureMarch = Fixture{
	Name: "march",
	Records: []model.Record{
		{Type: model.TypeIncome, Category: "Salary", Desc: "March pay", Amount: 1000, Date: "2024-03-01"},
		{Type: model.TypeExpense, Category: "Food", Desc: "Groceries", Amount: 200, Date: "2024-03-05"},
		{Type: model.TypeExpense, Category: "Transportation", Desc: "Bus pass", Amount: 45.5, Date: "2024-03-03"},
		{Type: model.TypeIncome, Category: "Freelance", Desc: "Logo design", Amount: 300, Date: "2024-03-04"},
	},
}

// FixtureEmpty has no records.
var FixtureEmpty = Fixture{Name: "empty"}
