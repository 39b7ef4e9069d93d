package models

import "encoding/json"

// Optional is a field of a partial update. Set reports whether the caller
// supplied the field at all, so an explicit JSON null can clear a value
// while an absent field leaves it untouched.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Set = true
	return nil
}
