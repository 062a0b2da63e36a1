package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPtr(t *testing.T) {
	p := Ptr(42)
	require.NotNil(t, p)
	assert.Equal(t, 42, *p)

	s := Ptr("healthy")
	require.NotNil(t, s)
	assert.Equal(t, "healthy", *s)
}
