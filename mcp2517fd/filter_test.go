package mcp2517fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilterRejectsOutOfRangeIndex(t *testing.T) {
	id, _ := NewStandardID(1)
	_, ok := NewFilter(id, 32)
	assert.False(t, ok)
}

func TestFilterScenario5(t *testing.T) {
	id, _ := NewStandardID(0x6A5)
	filter, ok := NewFilter(id, 1)
	require.True(t, ok)

	filter.SetMaskStandardID(0x03)
	filter.MatchStandardOnly()

	assert.Equal(t, [4]byte{0xA5, 0x06, 0x00, 0x00}, filter.filterBits.asRegisterBytes())
	assert.Equal(t, [4]byte{0x03, 0x00, 0x00, 0x40}, filter.maskBits.asRegisterBytes())
}

func TestFilterExtendedIDSplitsFields(t *testing.T) {
	id, _ := NewExtendedID(0xC672)
	filter, ok := NewFilter(id, 2)
	require.True(t, ok)
	filter.SetMaskExtendedID(0xFF00)
	filter.MatchExtendedOnly()

	assert.True(t, filter.filterBits.exideOrMide)
	assert.True(t, filter.maskBits.exideOrMide)

	wantEID, wantSID := splitExtended(0xC672)
	assert.Equal(t, wantEID, filter.filterBits.eid)
	assert.Equal(t, wantSID, filter.filterBits.sid)
}

func TestControllerEnableFilterTwoWrites(t *testing.T) {
	spi := newFakeSPI()
	c := New(spi)

	require.NoError(t, c.EnableFilter(1, 0))
	require.Len(t, spi.writes, 2)
	assert.Equal(t, byte(0x01), spi.writes[0][2])
	assert.Equal(t, byte(0x81), spi.writes[1][2])
}

func TestControllerDisableFilterWritesZero(t *testing.T) {
	spi := newFakeSPI()
	c := New(spi)

	require.NoError(t, c.DisableFilter(0))
	require.Len(t, spi.writes, 1)
	assert.Equal(t, byte(0x00), spi.writes[0][2])
}

func TestControllerSetFilterObjectScenario5(t *testing.T) {
	spi := newFakeSPI()
	c := New(spi)

	id, _ := NewStandardID(0x6A5)
	filter, ok := NewFilter(id, 1)
	require.True(t, ok)
	filter.SetMaskStandardID(0x03)
	filter.MatchStandardOnly()

	require.NoError(t, c.SetFilterObject(filter))
	require.Len(t, spi.writes, 4)
	assert.Equal(t, byte(0x00), spi.writes[0][2])
	assert.Equal(t, []byte{0xA5, 0x06, 0x00, 0x00}, spi.writes[1][2:])
	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x40}, spi.writes[2][2:])
	assert.Equal(t, byte(0x81), spi.writes[3][2])
}
