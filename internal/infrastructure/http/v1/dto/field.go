package dto

import "encoding/json"

// Field is an optional JSON field that distinguishes three states: absent
// (leave unchanged), explicit null (set the column to NULL) and a value.
// Partial-update requests need all three because most edition columns are
// nullable.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the body, so Set records
// presence and Valid records a non-null value.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// MarshalJSON round-trips the field; absent fields marshal as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
