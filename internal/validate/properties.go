// properties.go validates item property bags.
//
// Separated because the property bag is the one open-ended input: an
// arbitrary string→string map serialized to JSON. Caps keep a single item
// from bloating the database and the search index.

package validate

import "fmt"

const (
	// MaxProperties caps the number of keys in one property bag.
	MaxProperties = 100
	// MaxPropertyKey caps a single property key.
	MaxPropertyKey = 128
	// MaxPropertyValue caps a single property value.
	MaxPropertyValue = 4096
)

// Properties validates an item property bag. A nil map is valid and is
// stored as an empty JSON object.
func Properties(props map[string]string) error {
	if len(props) > MaxProperties {
		return fmt.Errorf("%w: more than %d properties", ErrInvalidProperties, MaxProperties)
	}
	for k, v := range props {
		if k == "" {
			return fmt.Errorf("%w: empty property key", ErrInvalidProperties)
		}
		if len(k) > MaxPropertyKey {
			return fmt.Errorf("%w: property key %q exceeds %d bytes", ErrInvalidProperties, k[:32], MaxPropertyKey)
		}
		if len(v) > MaxPropertyValue {
			return fmt.Errorf("%w: value for property %q exceeds %d bytes", ErrInvalidProperties, k, MaxPropertyValue)
		}
	}
	return nil
}
