package mcp2517fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerReset(t *testing.T) {
	spi := newFakeSPI()
	c := New(spi)

	require.NoError(t, c.Reset())
	require.Len(t, spi.writes, 1)
	assert.Equal(t, []byte{0x00, 0x00}, spi.writes[0])
}

func TestControllerReadOperationStatus(t *testing.T) {
	spi := newFakeSPI()
	cmd := command(opcodeRead, regC1CON+2)
	spi.on(cmd[:], []byte{cmd[0], cmd[1], 0b11000000})
	c := New(spi)

	status, err := c.ReadOperationStatus()
	require.NoError(t, err)
	assert.Equal(t, ModeNormalCAN2_0, status.Mode)
}

func TestControllerClockConfigurationRoundTrip(t *testing.T) {
	spi := newFakeSPI()
	cmd := command(opcodeRead, regOSC)
	spi.on(cmd[:], []byte{cmd[0], cmd[1], 0b01100001})
	c := New(spi)

	clock, err := c.ReadClockConfiguration()
	require.NoError(t, err)
	assert.Equal(t, ClockOutputDivideBy2, clock.ClockOutput)
	assert.Equal(t, PLLTenTimesPLL, clock.PLL)
}

func TestControllerReadOscillatorStatus(t *testing.T) {
	spi := newFakeSPI()
	cmd := command(opcodeRead, regOSC+1)
	spi.on(cmd[:], []byte{cmd[0], cmd[1], 0b00010011})
	c := New(spi)

	status, err := c.ReadOscillatorStatus()
	require.NoError(t, err)
	assert.True(t, status.PLLReady)
	assert.True(t, status.OscillatorReady)
	assert.True(t, status.SynchronizedClockReady)
}

func TestControllerLoggerSeamDefaultsToNoOp(t *testing.T) {
	spi := newFakeSPI()
	c := New(spi)
	// SetLogger never called; logf must be safe to call without panicking.
	c.logf("no logger installed: %d", 1)
}

func TestControllerLoggerSeamInvoked(t *testing.T) {
	spi := newFakeSPI()
	c := New(spi)

	var got string
	c.SetLogger(func(format string, v ...interface{}) {
		got = format
	})
	c.logf("hello %d", 1)
	assert.Equal(t, "hello %d", got)
}
