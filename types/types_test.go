package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointers(t *testing.T) {
	p := ToPointer("x")
	assert.Equal(t, "x", *p)
	assert.Equal(t, "x", ToValue(p))
	assert.Equal(t, 0, ToValue[int](nil))

	v := 1
	q := ToPointer(v)
	v = 2
	assert.Equal(t, 1, *q)
}

func TestJSONAlias(t *testing.T) {
	var data map[string]any = JSON{"rows": JSONArray{{"id": "1"}}}
	assert.Len(t, data["rows"], 1)
}
