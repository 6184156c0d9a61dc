package mcp2517fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigureScenario1 replays the bus trace of the worked
// configuration example: sys_clk=20MHz, 500kbps, NormalCAN2_0 target,
// RX size 16, TX size 20, priority 10, three retransmits, FIFO 1 RX /
// FIFO 2 TX.
func TestConfigureScenario1(t *testing.T) {
	spi := newFakeSPI()
	spi.on([]byte{0x30, 0x02}, []byte{0x30, 0x02, 0b10010100}) // Configuration
	spi.on([]byte{0x30, 0x02}, []byte{0x30, 0x02, 0b11000000}) // NormalCAN2_0
	c := New(spi)
	clock := newFakeClock(100, 10_000)

	config := Configuration{
		Clock: ClockConfiguration{
			ClockOutput: ClockOutputDivideBy10,
			SystemClock: SystemClockDivideBy1,
			PLL:         PLLTenTimesPLL,
		},
		Fifo: FifoConfiguration{
			RxSize:     16,
			TxSize:     20,
			TxPriority: 10,
			TxAttempts: RetransmissionThree,
			PayloadLen: PayloadEightBytes,
			TxEnable:   true,
		},
		BitRate: LookupBitRateConfig(20_000_000, 500_000),
		Mode:    RequestNormalCAN2_0,
	}

	require.NoError(t, c.Configure(config, clock))

	var payloadWrites [][]byte
	for _, w := range spi.writes {
		if len(w) >= 3 && w[0]>>4 == opcodeWrite {
			payloadWrites = append(payloadWrites, w)
		}
	}

	require.GreaterOrEqual(t, len(payloadWrites), 11)

	assert.EqualValues(t, 0b00001100, payloadWrites[0][2]) // enter Configuration
	assert.EqualValues(t, 0b01100001, payloadWrites[1][2]) // OSC
	assert.Equal(t, []byte{0x01, 0x1E, 0x07, 0x00}, payloadWrites[2][2:]) // C1NBTCFG
	assert.EqualValues(t, 0b00001111, payloadWrites[3][2])                // RX FIFO byte 3
	assert.EqualValues(t, 0b00101010, payloadWrites[4][2])                // TX FIFO byte 2
	assert.EqualValues(t, 0b00010011, payloadWrites[5][2])                // TX FIFO byte 3
	assert.EqualValues(t, 0b10000000, payloadWrites[6][2])                // TX FIFO byte 0
	assert.EqualValues(t, 0x00, payloadWrites[7][2])                      // disable filter 0
	assert.EqualValues(t, 0x01, payloadWrites[8][2])                      // route filter 0 to FIFO 1
	assert.EqualValues(t, 0x81, payloadWrites[9][2])                      // enable filter 0
	assert.EqualValues(t, 0b00001110, payloadWrites[10][2])               // request NormalCAN2_0
}
