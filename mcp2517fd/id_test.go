package mcp2517fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardID(t *testing.T) {
	id, ok := NewStandardID(0x7FF)
	require.True(t, ok)
	assert.EqualValues(t, 0x7FF, id.Raw())

	_, ok = NewStandardID(0x800)
	assert.False(t, ok)
}

func TestNewExtendedID(t *testing.T) {
	id, ok := NewExtendedID(0x1FFFFFFF)
	require.True(t, ok)
	assert.EqualValues(t, 0x1FFFFFFF, id.Raw())

	_, ok = NewExtendedID(0x20000000)
	assert.False(t, ok)
}

func TestSplitJoinExtendedRoundTrip(t *testing.T) {
	for _, raw := range []uint32{0, 0x14C92A2B, 0x1FFFFFFF, 0xC672} {
		eid, sid := splitExtended(raw)
		assert.Equal(t, raw, joinExtended(eid, sid), "round trip for %#x", raw)
	}
}
