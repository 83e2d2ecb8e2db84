package domain

import "fmt"

// Variant says which day a fortune request is about, relative to the
// date carried in the key. The upstream API exposes separate endpoints
// for the two.
type Variant string

const (
	VariantToday    Variant = "today"
	VariantTomorrow Variant = "tomorrow"
)

// Valid reports whether v is one of the two known variants.
func (v Variant) Valid() bool {
	return v == VariantToday || v == VariantTomorrow
}

// FortuneKey identifies one cache slot: a calendar date (YYYY-MM-DD) plus
// the requested variant. Keys are compared by value; two keys with equal
// fields address the same slot.
type FortuneKey struct {
	Date    string
	Variant Variant
}

func (k FortuneKey) String() string {
	return fmt.Sprintf("%s/%s", k.Date, k.Variant)
}
