// Copyright 2017 by Thorsten von Eicken, see LICENSE file

// Package spimux lets two MCP2517FD controllers share a single SPI bus
// whose chip-select line is demuxed in hardware by an extra GPIO pin,
// rather than each getting its own dedicated bus.
//
// A sample circuit is to use a 74LVC1G19 demux with the SPI CS connected
// to E, the GPIO select pin connected to A, and the CS inputs of the two
// controllers attached to Y0 and Y1 respectively. A pull-down resistor
// on the A input of the demux is recommended to ensure both chip
// selects remain inactive when the SPI CS is not driven.
//
// A limitation of the current implementation is that the clock speed
// and SPI mode are shared between the two controllers - it is not
// possible to run them at different settings.
package spimux

import (
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/atlas-aero/rt-mcp2517/devices"
)

// Device is one of the two demuxed devices.SPIDevice endpoints sharing
// the underlying spi.Conn.
type Device struct {
	mu     *sync.Mutex
	conn   spi.Conn
	selPin gpio.PinOut
	sel    gpio.Level
}

// New returns two devices.SPIDevice endpoints over the same spi.Conn:
// the first drives selPin Low before each transfer, the second drives
// it High.
func New(conn spi.Conn, selPin gpio.PinOut) (*Device, *Device) {
	mu := &sync.Mutex{}
	return &Device{mu, conn, selPin, gpio.Low}, &Device{mu, conn, selPin, gpio.High}
}

// TransferInPlace implements devices.SPIDevice.
func (d *Device) TransferInPlace(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.selPin.Out(d.sel); err != nil {
		return err
	}
	return d.conn.Tx(buf, buf)
}

// Transaction implements devices.SPIDevice, selecting this device for
// the whole sequence of phases.
func (d *Device) Transaction(ops []devices.Operation) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.selPin.Out(d.sel); err != nil {
		return err
	}

	for _, op := range ops {
		switch {
		case op.Write != nil:
			if err := d.conn.Tx(op.Write, nil); err != nil {
				return err
			}
		case op.Read != nil:
			if err := d.conn.Tx(nil, op.Read); err != nil {
				return err
			}
		}
	}
	return nil
}

var _ devices.SPIDevice = &Device{}
