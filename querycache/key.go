package querycache

import (
	"encoding/json"
	"fmt"
	"strings"
)

const keySep = "/"

// Key identifies a query. Parts are encoded as JSON.
type Key []any

// K builds a key from parts.
func K(parts ...any) Key { return Key(parts) }

// String encodes the key. Two keys are equal when their encodings are.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		b, err := json.Marshal(p)
		if err != nil {
			b = []byte(fmt.Sprintf("%q", fmt.Sprint(p)))
		}
		parts[i] = string(b)
	}
	return strings.Join(parts, keySep)
}

// HasPrefix reports whether k starts with every part of prefix.
func (k Key) HasPrefix(prefix Key) bool {
	return hasPrefix(k.String(), prefix.String())
}

func hasPrefix(encoded, prefix string) bool {
	if prefix == "" {
		return true
	}
	return encoded == prefix || strings.HasPrefix(encoded, prefix+keySep)
}
