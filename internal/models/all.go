package models

import (
	"encoding/json"
)

// Model is implemented by all resources stored in the database.
type Model interface {
	Export() (json.RawMessage, error) // All instances of this model for export.
}

// Registry lists all models so that operations affecting every model, like
// the export, do not need to name each one explicitly.
var Registry = []Model{
	MoneyBook{},
	Pocket{},
	Allocation{},
	AllocationItem{},
}

// export returns all resources of type T as JSON.
func export[T any]() (json.RawMessage, error) {
	var resources []T
	err := DB.Find(&resources).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&resources)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
