package mcp2517fd

import "github.com/atlas-aero/rt-mcp2517/devices"

// rxFifoIndex and txFifoIndex are the two FIFOs the configuration
// orchestrator wires up: FIFO 1 for receive, FIFO 2 for transmit.
const (
	rxFifoIndex uint16 = 1
	txFifoIndex uint16 = 2
)

// Configuration is the full set of chip settings configure() applies in
// one pass.
type Configuration struct {
	Clock   ClockConfiguration
	Fifo    FifoConfiguration
	BitRate BitRateConfig
	Mode    RequestMode
}

// DefaultConfiguration matches the chip's reset defaults plus a
// NormalCANFD target mode.
func DefaultConfiguration() Configuration {
	return Configuration{
		Fifo: DefaultFifoConfiguration(),
		Mode: RequestNormalCANFD,
	}
}

// Configure applies config in the chip's required order: enter
// Configuration mode, program the oscillator, bit-time, FIFO and filter
// registers, then request the target mode. Any step failing surfaces
// its error immediately; the chip is left in Configuration mode and a
// subsequent Reset returns it to defaults.
func (c *Controller) Configure(config Configuration, clock devices.Clock) error {
	if err := c.enableMode(ModeConfiguration, clock, ErrConfigurationModeTimeout); err != nil {
		return err
	}

	if err := c.writeRegisterByte(regOSC, config.Clock.AsRegisterByte()); err != nil {
		return err
	}

	nbtBytes := config.BitRate.AsRegisterBytes()
	if err := c.writeRegisterBytes(regC1NBTCFG, nbtBytes[:]); err != nil {
		return err
	}

	if err := c.writeRegisterByte(fifoControlAddr(rxFifoIndex)+3, config.Fifo.AsRxRegister()); err != nil {
		return err
	}

	if err := c.writeRegisterByte(fifoControlAddr(txFifoIndex)+2, config.Fifo.AsTxRegister2()); err != nil {
		return err
	}
	if err := c.writeRegisterByte(fifoControlAddr(txFifoIndex)+3, config.Fifo.AsTxRegister3()); err != nil {
		return err
	}
	if err := c.writeRegisterByte(fifoControlAddr(txFifoIndex), config.Fifo.AsTxRegister0()); err != nil {
		return err
	}

	if err := c.DisableFilter(0); err != nil {
		return err
	}
	if err := c.EnableFilter(rxFifoIndex, 0); err != nil {
		return err
	}

	c.logf("mcp2517fd: configured, requesting mode %v", config.Mode)
	return c.enableMode(config.Mode.ToOperationMode(), clock, ErrRequestModeTimeout)
}
