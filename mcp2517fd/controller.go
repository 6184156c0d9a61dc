package mcp2517fd

import "github.com/atlas-aero/rt-mcp2517/devices"

// LogPrintf is a function used by the driver to print trace lines. A
// nil LogPrintf disables logging, which is the default.
type LogPrintf func(format string, v ...interface{})

// Controller drives one MCP2517FD over an injected SPI bus. It owns no
// goroutines and performs no I/O until a method is called.
type Controller struct {
	spi devices.SPIDevice
	log LogPrintf
}

// New returns a Controller driving spi. The chip is left however the
// bus last configured it; call Reset to force known defaults.
func New(spi devices.SPIDevice) *Controller {
	return &Controller{spi: spi}
}

// SetLogger sets the trace logging function; nil disables logging.
func (c *Controller) SetLogger(l LogPrintf) {
	c.log = l
}

func (c *Controller) logf(format string, v ...interface{}) {
	if c.log != nil {
		c.log(format, v...)
	}
}

// Reset issues the chip-wide reset command, returning the chip to
// Configuration mode with default register values.
func (c *Controller) Reset() error {
	c.logf("mcp2517fd: reset")
	return c.reset()
}

// ReadOperationStatus reads and decodes the C1CON status byte.
func (c *Controller) ReadOperationStatus() (OperationStatus, error) {
	register, err := c.readRegisterByte(regC1CON + 2)
	if err != nil {
		return OperationStatus{}, err
	}
	return OperationStatusFromRegisterByte(register), nil
}

// ReadClockConfiguration reads and decodes the OSC register.
func (c *Controller) ReadClockConfiguration() (ClockConfiguration, error) {
	register, err := c.readRegisterByte(regOSC)
	if err != nil {
		return ClockConfiguration{}, err
	}
	return ClockConfigurationFromRegisterByte(register), nil
}

// ReadOscillatorStatus reads and decodes the OSC register's status
// byte, reporting whether the PLL, oscillator, and synchronized system
// clock have locked.
func (c *Controller) ReadOscillatorStatus() (OscillatorStatus, error) {
	register, err := c.readRegisterByte(regOSC + 1)
	if err != nil {
		return OscillatorStatus{}, err
	}
	return OscillatorStatusFromRegisterByte(register), nil
}

// WriteClockConfiguration writes the OSC register.
func (c *Controller) WriteClockConfiguration(clock ClockConfiguration) error {
	return c.writeRegisterByte(regOSC, clock.AsRegisterByte())
}
