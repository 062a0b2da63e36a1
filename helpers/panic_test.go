package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrPanic(t *testing.T) {
	assert.Equal(t, "backend-api", StrPanic("backend-api", "must not panic"))
	assert.PanicsWithValue(t, "empty string", func() {
		StrPanic("", "empty string")
	})
}

func TestNilPanic(t *testing.T) {
	value := &struct{ n int }{n: 1}
	assert.Equal(t, value, NilPanic(value, "must not panic"))

	assert.PanicsWithValue(t, "nil pointer", func() {
		var p *int
		NilPanic(p, "nil pointer")
	})
	assert.PanicsWithValue(t, "nil map", func() {
		var m map[string]int
		NilPanic(m, "nil map")
	})
	assert.PanicsWithValue(t, "nil func", func() {
		var f func()
		NilPanic(f, "nil func")
	})
	assert.PanicsWithValue(t, "nil interface", func() {
		var err error
		NilPanic(err, "nil interface")
	})

	assert.NotPanics(t, func() {
		NilPanic(0, "zero int is not nil")
		NilPanic("", "empty string is not nil")
	})
}
