package components

import "github.com/Veraticus/spice-tracker/internal/model"

// RecordDetailsRequestMsg requests to show one record in full.
type RecordDetailsRequestMsg struct {
	Record model.Record
}

// BackToListMsg requests to go back to the record table.
type BackToListMsg struct{}
