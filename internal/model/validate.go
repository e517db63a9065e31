package model

import (
	"errors"
	"math"
	"time"
)

// Validation errors. Each has exactly one user-facing message, see UserMessage.
var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrMissingDate     = errors.New("missing date")
	ErrFutureDate      = errors.New("date is in the future")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCategory = errors.New("category does not match transaction type")
)

var userMessages = map[error]string{
	ErrInvalidAmount:   "Please enter a valid amount",
	ErrMissingDate:     "Please enter a valid date",
	ErrFutureDate:      "Please enter a date that is not in the future",
	ErrInvalidType:     "Please choose Expense or Income",
	ErrInvalidCategory: "Please choose a category that matches the transaction type",
}

// Validate checks the amount and date of a record as of now.
// Amount is checked first, then presence of the date, then that it is not
// later than today.
func Validate(amount float64, date Date, now time.Time) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	if _, ok := date.Time(); !ok {
		return ErrMissingDate
	}
	if date.After(now) {
		return ErrFutureDate
	}
	return nil
}

// UserMessage returns the message shown to the user for a validation error,
// or the empty string when err is not one.
func UserMessage(err error) string {
	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return ""
}
