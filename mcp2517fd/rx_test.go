package mcp2517fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReceiveScenario4 replays the blocking-receive worked example: an
// 8-byte payload sitting behind the RX FIFO's message header.
func TestReceiveScenario4(t *testing.T) {
	spi := newFakeSPI()
	statusCmd := command(opcodeRead, fifoStatusAddr(1))
	spi.on(statusCmd[:], []byte{statusCmd[0], statusCmd[1], 0x00})
	spi.on(statusCmd[:], []byte{statusCmd[0], statusCmd[1], 0x01})

	userAddrCmd := command(opcodeRead, fifoUserAddrAddr(1))
	spi.on(userAddrCmd[:], []byte{userAddrCmd[0], userAddrCmd[1], 0x7C, 0x04, 0x00, 0x00})

	c := New(spi)
	buf := make([]byte, 8)
	require.NoError(t, c.Receive(1, buf))

	require.Len(t, spi.txCalls, 1)
	ops := spi.txCalls[0]
	require.Len(t, ops, 2)

	wantAddr := uint16(0x047C) + ramBase + rxHeaderBytes
	wantCmd := command(opcodeRead, wantAddr)
	assert.Equal(t, wantCmd[0], ops[0].Write[0])
	assert.Equal(t, wantCmd[1], ops[0].Write[1])
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, buf)

	controlByte1Addr := fifoControlAddr(1) + 1
	found := false
	for _, w := range spi.writes {
		if len(w) == 3 && w[1] == byte(controlByte1Addr) && w[2] == fifoUincBit {
			found = true
		}
	}
	assert.True(t, found)
}

func TestReceiveNonBlockingFailsWhenFifoEmpty(t *testing.T) {
	spi := newFakeSPI()
	statusCmd := command(opcodeRead, fifoStatusAddr(1))
	spi.on(statusCmd[:], []byte{statusCmd[0], statusCmd[1], 0x00})

	c := New(spi)
	err := c.TryReceive(1, make([]byte, 4))
	assert.ErrorIs(t, err, ErrRxFifoEmpty)
}

func TestReceiveRejectsMisalignedBuffer(t *testing.T) {
	spi := newFakeSPI()
	c := New(spi)
	err := c.TryReceive(1, make([]byte, 3))
	var invalidSize *InvalidBufferSizeError
	assert.ErrorAs(t, err, &invalidSize)
}
