// Package hostspi backs the devices.SPIDevice capability with a real
// periph.io SPI connection, for programs that talk to an actual
// MCP2517FD rather than a mock. It is the only place in the module that
// imports periph.io/x/host/v3; the driver package imports no periph.io
// package at all.
package hostspi

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/atlas-aero/rt-mcp2517/devices"
)

// Device adapts a periph.io spi.Conn to devices.SPIDevice. A single
// spi.Conn already owns chip-select for the lifetime of the connection,
// so every Transaction phase and TransferInPlace call runs under it.
type Device struct {
	conn spi.Conn
	port spi.PortCloser
}

// Open initializes the periph.io host drivers, opens the named SPI
// port (empty string picks the first available bus, following
// spireg.Open's own convention), and connects at the given clock speed
// in SPI mode 0, 8 bits per word - the mode the MCP2517FD requires.
func Open(name string, speed physic.Frequency) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hostspi: %w", err)
	}

	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("hostspi: %w", err)
	}

	conn, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("hostspi: %w", err)
	}

	return &Device{conn: conn, port: port}, nil
}

// Close releases the underlying SPI port.
func (d *Device) Close() error {
	return d.port.Close()
}

// OpenConn is like Open but returns the raw periph.io connection instead
// of wrapping it in a Device, for callers (such as spimux) that need to
// share one physical bus across more than one chip-select.
func OpenConn(name string, speed physic.Frequency) (spi.Conn, spi.PortCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("hostspi: %w", err)
	}

	port, err := spireg.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("hostspi: %w", err)
	}

	conn, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("hostspi: %w", err)
	}

	return conn, port, nil
}

// TransferInPlace implements devices.SPIDevice.
func (d *Device) TransferInPlace(buf []byte) error {
	return d.conn.Tx(buf, buf)
}

// Transaction implements devices.SPIDevice. periph.io's spi.Conn has no
// notion of a multi-phase transaction under one chip-select assertion
// beyond a single Tx call, so phases are concatenated into one buffer:
// this is safe because every caller in mcp2517fd only ever chains a
// single write phase with a single read phase (or two writes), never
// reads partway through and branches on the result.
func (d *Device) Transaction(ops []devices.Operation) error {
	var writeLen, readLen int
	for _, op := range ops {
		writeLen += len(op.Write)
		readLen += len(op.Read)
	}

	out := make([]byte, 0, writeLen+readLen)
	for _, op := range ops {
		if op.Write != nil {
			out = append(out, op.Write...)
		} else {
			out = append(out, make([]byte, len(op.Read))...)
		}
	}

	in := make([]byte, len(out))
	if err := d.conn.Tx(out, in); err != nil {
		return err
	}

	offset := 0
	for _, op := range ops {
		switch {
		case op.Write != nil:
			offset += len(op.Write)
		case op.Read != nil:
			copy(op.Read, in[offset:offset+len(op.Read)])
			offset += len(op.Read)
		}
	}
	return nil
}
