package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spice-tracker/internal/model"
)

var promptNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out, func() time.Time { return promptNow }), &out
}

func TestPrompter_PromptFields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		initial  model.Fields
		expected model.Fields
		messages []string
	}{
		{
			name:  "new expense with defaults",
			input: "\n\n12.50\n\nLunch\n",
			expected: model.Fields{
				Type:     model.TypeExpense,
				Category: "House",
				Amount:   12.5,
				Date:     "2024-03-15",
				Desc:     "Lunch",
			},
		},
		{
			name:  "income by category number",
			input: "income\n1\n$2,500\n2024-03-01\nMarch pay\n",
			expected: model.Fields{
				Type:     model.TypeIncome,
				Category: "Salary",
				Amount:   2500,
				Date:     "2024-03-01",
				Desc:     "March pay",
			},
		},
		{
			name:  "category by name is case insensitive",
			input: "expense\nfood\n8\n2024-03-14\n\n",
			expected: model.Fields{
				Type:     model.TypeExpense,
				Category: "Food",
				Amount:   8,
				Date:     "2024-03-14",
			},
		},
		{
			name:  "re-prompts after bad answers",
			input: "transfer\nexpense\nSalary\n42\nBills\n-3\nabc\n3\n2024-13-01\n2099-01-01\n2024-02-29\nPower\n",
			expected: model.Fields{
				Type:     model.TypeExpense,
				Category: "Bills",
				Amount:   3,
				Date:     "2024-02-29",
				Desc:     "Power",
			},
			messages: []string{
				"Please choose Expense or Income",
				"Please choose a category that matches the transaction type",
				"Please enter a valid amount",
				"Please enter a valid date",
				"Please enter a date that is not in the future",
			},
		},
		{
			name:  "editing keeps existing values",
			input: "\n\n\n\n\n",
			initial: model.Fields{
				Type:     model.TypeIncome,
				Category: "Rent",
				Amount:   900,
				Date:     "2024-01-31",
				Desc:     "Flat 2",
			},
			expected: model.Fields{
				Type:     model.TypeIncome,
				Category: "Rent",
				Amount:   900,
				Date:     "2024-01-31",
				Desc:     "Flat 2",
			},
		},
		{
			name:  "changing type resets category",
			input: "expense\n\n\n\n\n",
			initial: model.Fields{
				Type:     model.TypeIncome,
				Category: "Rent",
				Amount:   900,
				Date:     "2024-01-31",
			},
			expected: model.Fields{
				Type:     model.TypeExpense,
				Category: "House",
				Amount:   900,
				Date:     "2024-01-31",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.input)

			fields, err := p.PromptFields(context.Background(), tt.initial)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, fields)

			for _, msg := range tt.messages {
				assert.Contains(t, out.String(), msg)
			}
		})
	}
}

func TestPrompter_PromptFields_ListsCategories(t *testing.T) {
	p, out := newTestPrompter("income\n\n5\n\n\n")

	_, err := p.PromptFields(context.Background(), model.Fields{})
	require.NoError(t, err)

	for i, c := range model.Categories(model.TypeIncome) {
		assert.Contains(t, out.String(), "["+string(rune('1'+i))+"] "+c)
	}
	assert.NotContains(t, out.String(), "Transportation")
}

func TestPrompter_PromptFields_InputEnds(t *testing.T) {
	p, _ := newTestPrompter("expense\nFood\n")

	_, err := p.PromptFields(context.Background(), model.Fields{})
	assert.ErrorIs(t, err, ErrInputTerminated)
}

func TestPrompter_PromptFields_Canceled(t *testing.T) {
	p, _ := newTestPrompter("expense\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.PromptFields(ctx, model.Fields{})
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "y", input: "y\n", expected: true},
		{name: "yes uppercase", input: "YES\n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "empty is no", input: "\n", expected: false},
		{name: "anything else is no", input: "sure\n", expected: false},
		{name: "end of input is no", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.input)

			ok, err := p.Confirm(context.Background(), "Delete record 7?")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Contains(t, out.String(), "Delete record 7? [y/N]")
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{input: "12.50", expected: 12.5},
		{input: " 3 ", expected: 3},
		{input: "$1,200.75", expected: 1200.75},
		{input: "0.01", expected: 0.01},
		{input: "0", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "", wantErr: true},
		{input: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, amount, 1e-9)
		})
	}
}
