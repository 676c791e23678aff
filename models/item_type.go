package models

import "fmt"

// ItemType is the closed set of categories a screenshot can classify as.
type ItemType int

const (
	// ItemNone means no category score cleared the threshold.
	ItemNone ItemType = iota
	ItemRecipe
	ItemWorkout
	ItemQuote
)

// Categories lists the scoreable categories in priority order. ItemNone is
// excluded: it is a decision outcome, not a scored category.
func Categories() []ItemType {
	return []ItemType{ItemRecipe, ItemWorkout, ItemQuote}
}

// AllItemTypes lists every label value, in the order used for
// confusion-matrix axes.
func AllItemTypes() []ItemType {
	return []ItemType{ItemRecipe, ItemWorkout, ItemQuote, ItemNone}
}

func (t ItemType) String() string {
	switch t {
	case ItemRecipe:
		return "recipe"
	case ItemWorkout:
		return "workout"
	case ItemQuote:
		return "quote"
	default:
		return "none"
	}
}

// ParseItemType converts a stored or user-supplied label into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "recipe":
		return ItemRecipe, nil
	case "workout":
		return ItemWorkout, nil
	case "quote":
		return ItemQuote, nil
	case "none":
		return ItemNone, nil
	}
	return ItemNone, fmt.Errorf("unknown item type %q (want recipe, workout, quote or none)", s)
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (t ItemType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ItemType) UnmarshalText(b []byte) error {
	parsed, err := ParseItemType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
