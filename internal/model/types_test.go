package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValueScanRoundTrip(t *testing.T) {
	original := StringList{"G1", "G2", "G3"}
	value, err := original.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestStringListNilValue(t *testing.T) {
	var l StringList
	value, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	var scanned StringList
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

func TestStringListRemoveKeepsOrder(t *testing.T) {
	l := StringList{"a", "b", "c", "b"}
	out := l.Remove("b")
	assert.Equal(t, StringList{"a", "c"}, out)
	// 原列表不被修改
	assert.Equal(t, StringList{"a", "b", "c", "b"}, l)
	assert.True(t, l.Contains("b"))
	assert.False(t, out.Contains("b"))
}
