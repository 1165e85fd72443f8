package models

// Optional tracks tri-state semantics for partial updates. It is
// transport-agnostic; handlers map into it from their wire DTOs.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value!=nil: field has a value, including zero values
type Optional[T any] struct {
	Present bool
	Value   *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: &v}
}

// Null returns a present Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// IsNull reports whether the field was explicitly set to null.
func (o Optional[T]) IsNull() bool {
	return o.Present && o.Value == nil
}
