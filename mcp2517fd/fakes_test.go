package mcp2517fd

import (
	"errors"
	"fmt"

	"github.com/atlas-aero/rt-mcp2517/devices"
)

// scriptedTransfer answers one TransferInPlace call keyed by the bytes
// written (the command word plus any value byte); response replaces
// the trailing response bytes of the buffer.
type scriptedTransfer struct {
	command  []byte
	response []byte
}

// fakeSPI is a scripted devices.SPIDevice standing in for a real bus,
// matching the bus traces in the concrete scenarios: each distinct
// command word has one or more queued responses, consumed in order.
type fakeSPI struct {
	responses map[string][][]byte
	writes    [][]byte
	txCalls   [][]devices.Operation
}

func newFakeSPI() *fakeSPI {
	return &fakeSPI{responses: make(map[string][][]byte)}
}

func keyOf(buf []byte, n int) string {
	if n > len(buf) {
		n = len(buf)
	}
	return fmt.Sprintf("%x", buf[:n])
}

// on queues a response for the next TransferInPlace call whose leading
// bytes match cmdAndHeader; response's length must equal len(buf) for
// the matching call.
func (f *fakeSPI) on(cmdAndHeader []byte, response []byte) {
	key := fmt.Sprintf("%x", cmdAndHeader)
	f.responses[key] = append(f.responses[key], response)
}

func (f *fakeSPI) TransferInPlace(buf []byte) error {
	f.writes = append(f.writes, append([]byte(nil), buf...))

	for n := len(buf); n >= 2; n-- {
		key := keyOf(buf, n)
		queue := f.responses[key]
		if len(queue) == 0 {
			continue
		}
		resp := queue[0]
		f.responses[key] = queue[1:]
		if len(resp) != len(buf) {
			return fmt.Errorf("fakeSPI: response length %d does not match call length %d", len(resp), len(buf))
		}
		copy(buf, resp)
		return nil
	}
	return nil
}

func (f *fakeSPI) Transaction(ops []devices.Operation) error {
	f.txCalls = append(f.txCalls, ops)
	for _, op := range ops {
		if op.Read != nil {
			for i := range op.Read {
				op.Read[i] = byte(i + 1)
			}
		}
	}
	return nil
}

// fakeClock replays a fixed sequence of instants, erroring once
// exhausted - the Go shape of the original driver's TestClock/ExampleClock.
type fakeClock struct {
	instants []devices.Instant
	pos      int
}

func newFakeClock(instants ...devices.Instant) *fakeClock {
	return &fakeClock{instants: instants}
}

var errClockExhausted = errors.New("fakeClock: exhausted")

func (c *fakeClock) Now() (devices.Instant, error) {
	if c.pos >= len(c.instants) {
		return 0, errClockExhausted
	}
	v := c.instants[c.pos]
	c.pos++
	return v, nil
}
