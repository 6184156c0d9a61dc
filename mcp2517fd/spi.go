package mcp2517fd

import (
	"encoding/binary"

	"github.com/atlas-aero/rt-mcp2517/devices"
)

// command builds the 16-bit, big-endian command word sent ahead of
// every SPI transaction: opcode in the top 4 bits, a 12-bit register or
// RAM address in the rest.
func command(opcode uint8, address uint16) [2]byte {
	word := uint16(opcode&0xF)<<12 | (address & 0x0FFF)
	return [2]byte{byte(word >> 8), byte(word)}
}

// readRegisterByte reads a single SFR byte: command word, then one
// dummy byte whose clocked-in value is the register contents.
func (c *Controller) readRegisterByte(address uint16) (byte, error) {
	cmd := command(opcodeRead, address)
	buf := []byte{cmd[0], cmd[1], 0x00}
	if err := c.spi.TransferInPlace(buf); err != nil {
		return 0, busErr(err)
	}
	return buf[2], nil
}

// writeRegisterByte writes a single SFR byte.
func (c *Controller) writeRegisterByte(address uint16, value byte) error {
	cmd := command(opcodeWrite, address)
	buf := []byte{cmd[0], cmd[1], value}
	if err := c.spi.TransferInPlace(buf); err != nil {
		return busErr(err)
	}
	return nil
}

// readSFR32 reads a 4-byte SFR and assembles the result little-endian.
func (c *Controller) readSFR32(address uint16) (uint32, error) {
	cmd := command(opcodeRead, address)
	buf := []byte{cmd[0], cmd[1], 0, 0, 0, 0}
	if err := c.spi.TransferInPlace(buf); err != nil {
		return 0, busErr(err)
	}
	return binary.LittleEndian.Uint32(buf[2:]), nil
}

// writeSFR32 writes a 4-byte SFR, value encoded little-endian.
func (c *Controller) writeSFR32(address uint16, value uint32) error {
	cmd := command(opcodeWrite, address)
	buf := make([]byte, 6)
	buf[0], buf[1] = cmd[0], cmd[1]
	binary.LittleEndian.PutUint32(buf[2:], value)
	if err := c.spi.TransferInPlace(buf); err != nil {
		return busErr(err)
	}
	return nil
}

// writeRegisterBytes writes a contiguous run of SFR bytes starting at
// address, used for the 4-byte filter object/mask registers where the
// caller already has the bytes in wire order.
func (c *Controller) writeRegisterBytes(address uint16, value []byte) error {
	cmd := command(opcodeWrite, address)
	buf := make([]byte, 0, 2+len(value))
	buf = append(buf, cmd[0], cmd[1])
	buf = append(buf, value...)
	if err := c.spi.TransferInPlace(buf); err != nil {
		return busErr(err)
	}
	return nil
}

// reset issues the chip-wide reset command, returning it to default
// configuration and Configuration mode.
func (c *Controller) reset() error {
	cmd := command(opcodeReset, 0)
	buf := []byte{cmd[0], cmd[1]}
	if err := c.spi.TransferInPlace(buf); err != nil {
		return busErr(err)
	}
	return nil
}

// checkRAMAddress validates that a FIFO access of length bytes starting
// at addr stays within message RAM.
func checkRAMAddress(addr uint16, length int) error {
	if addr < ramBase {
		return &InvalidRamAddressError{Address: addr}
	}
	if uint32(addr)+uint32(length) > uint32(ramEnd)+1 {
		return &InvalidRamAddressError{Address: addr}
	}
	return nil
}

// fifoWrite performs a FIFO write transaction: the command word plus
// header in one phase, followed by the payload in a second phase, both
// under a single chip-select cycle.
func (c *Controller) fifoWrite(addr uint16, header [8]byte, payload []byte) error {
	if err := checkRAMAddress(addr, len(header)+len(payload)); err != nil {
		return err
	}
	cmd := command(opcodeWrite, addr)
	headerPhase := append([]byte{cmd[0], cmd[1]}, header[:]...)
	ops := []devices.Operation{
		devices.WriteOp(headerPhase),
		devices.WriteOp(payload),
	}
	if err := c.spi.Transaction(ops); err != nil {
		return busErr(err)
	}
	return nil
}

// fifoRead performs a FIFO read transaction: the command word for addr
// (callers point it past the 8-byte RX header), then a read phase
// filling buf. len(buf) must be a multiple of 4.
func (c *Controller) fifoRead(addr uint16, buf []byte) error {
	if len(buf)%4 != 0 {
		return &InvalidBufferSizeError{Length: len(buf)}
	}
	if err := checkRAMAddress(addr, len(buf)); err != nil {
		return err
	}
	cmd := command(opcodeRead, addr)
	ops := []devices.Operation{
		devices.WriteOp([]byte{cmd[0], cmd[1]}),
		devices.ReadOp(buf),
	}
	if err := c.spi.Transaction(ops); err != nil {
		return busErr(err)
	}
	return nil
}
