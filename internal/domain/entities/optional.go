package entities

import "encoding/json"

// Optional is a JSON field that distinguishes three states a partial update
// cares about: key absent (leave unchanged), key present with null (clear),
// and key present with a value (set). A plain pointer collapses the first
// two, which loses the "explicit null clears the field" contract.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns an Optional carrying a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that is present but null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, so Set is
// true whenever it runs.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
