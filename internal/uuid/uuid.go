// Package uuid wraps google/uuid so that IDs can be bound by gin from
// URI and query parameters.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

// ErrInvalid is returned when a parameter is not a valid UUID.
var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// Parse parses s. The empty string parses to Nil.
func Parse(s string) (UUID, error) {
	if s == "" {
		return Nil, nil
	}

	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, ErrInvalid
	}

	return UUID{parsed}, nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
func (u *UUID) UnmarshalParam(p string) error {
	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}

// IsNil reports if u is the Nil UUID.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}
