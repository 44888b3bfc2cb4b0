package dto

import "encoding/json"

// Optional is a three-state JSON field for partial updates: absent, present
// with a value, or present as an explicit null. Plain pointers cannot tell
// the last two apart.
type Optional[T any] struct {
	Set   bool // field appeared in the payload
	Valid bool // field carried a non-null value
	Value T
}

// UnmarshalJSON records presence; it is only invoked for fields that appear
// in the payload.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
