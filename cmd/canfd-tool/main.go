// Command canfd-tool configures an MCP2517FD over SPI and sends or
// receives a handful of CAN frames, mostly useful for bring-up and
// wiring checks on new hardware.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"

	"github.com/atlas-aero/rt-mcp2517/devices"
	"github.com/atlas-aero/rt-mcp2517/internal/hostspi"
	"github.com/atlas-aero/rt-mcp2517/mcp2517fd"
	"github.com/atlas-aero/rt-mcp2517/spimux"
	"github.com/atlas-aero/rt-mcp2517/thread"
)

var log = logrus.StandardLogger()

func main() {
	spiName := pflag.StringP("spi", "s", "", "SPI port name, empty for the first available bus")
	speedMHz := pflag.IntP("speed", "f", 10, "SPI clock speed in MHz")
	sysClkMHz := pflag.IntP("sys-clock", "c", 20, "MCP2517FD oscillator frequency in MHz")
	busKbps := pflag.IntP("bitrate", "b", 500, "CAN nominal bit rate in kbps")
	mode := pflag.StringP("mode", "m", "normal-can2.0", "target mode: normal-canfd, normal-can2.0, internal-loopback, external-loopback, listen-only")
	transmit := pflag.StringP("transmit", "t", "", "hex payload to transmit once configuration succeeds, e.g. 0102030405060708")
	receive := pflag.BoolP("receive", "r", false, "block waiting for and print one received frame")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	realtime := pflag.BoolP("realtime", "R", false, "give this process realtime scheduling, so the mode-change and FIFO polling loops aren't preempted mid-poll")
	selectPin := pflag.StringP("select-pin", "p", "", "GPIO pin name demuxing chip-select between two controllers sharing this bus, empty for a single controller with its own dedicated chip-select")
	pflag.Parse()

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(*spiName, *speedMHz, *sysClkMHz, *busKbps, *mode, *transmit, *receive, *realtime, *selectPin); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(spiName string, speedMHz, sysClkMHz, busKbps int, mode, transmitHex string, receive, realtime bool, selectPin string) error {
	requestMode, err := parseRequestMode(mode)
	if err != nil {
		return err
	}

	if realtime {
		if err := thread.Realtime(); err != nil {
			return fmt.Errorf("acquiring realtime scheduling: %w", err)
		}
	}

	bus, closeBus, err := openBus(spiName, physic.Frequency(speedMHz)*physic.MegaHertz, selectPin)
	if err != nil {
		return err
	}
	defer closeBus()

	controller := mcp2517fd.New(bus)
	controller.SetLogger(log.Debugf)

	if err := controller.Reset(); err != nil {
		return fmt.Errorf("resetting controller: %w", err)
	}

	config := mcp2517fd.DefaultConfiguration()
	config.BitRate = mcp2517fd.LookupBitRateConfig(uint32(sysClkMHz)*1_000_000, uint32(busKbps)*1_000)
	config.Mode = requestMode

	clock := devices.NewSystemClock()
	if err := controller.Configure(config, clock); err != nil {
		return fmt.Errorf("configuring controller: %w", err)
	}
	log.Infof("controller configured, mode %s", mode)

	if transmitHex != "" {
		payload, err := decodeHexPayload(transmitHex)
		if err != nil {
			return err
		}
		id, _ := mcp2517fd.NewStandardID(0x100)
		msg, err := mcp2517fd.NewTxMessage(mcp2517fd.CAN20(8), payload, id)
		if err != nil {
			return fmt.Errorf("building message: %w", err)
		}
		if err := controller.Transmit(2, msg, true); err != nil {
			return fmt.Errorf("transmitting: %w", err)
		}
		log.Infof("transmitted %d bytes", len(payload))
	}

	if receive {
		buf := make([]byte, 8)
		if err := controller.Receive(1, buf); err != nil {
			return fmt.Errorf("receiving: %w", err)
		}
		log.Infof("received % x", buf)
	}

	return nil
}

// openBus returns the devices.SPIDevice this controller should use, and
// a cleanup function to call on exit. With no select pin, the bus gets
// its own dedicated periph.io connection. With a select pin, the bus is
// demuxed with spimux alongside a second, otherwise idle, controller -
// useful for bring-up boards wiring two MCP2517FD chips to one SPI bus
// through a hardware chip-select demux.
func openBus(spiName string, speed physic.Frequency, selectPin string) (devices.SPIDevice, func() error, error) {
	if selectPin == "" {
		dev, err := hostspi.Open(spiName, speed)
		if err != nil {
			return nil, nil, err
		}
		return dev, dev.Close, nil
	}

	conn, port, err := hostspi.OpenConn(spiName, speed)
	if err != nil {
		return nil, nil, err
	}

	pin := gpioreg.ByName(selectPin)
	if pin == nil {
		port.Close()
		return nil, nil, fmt.Errorf("unknown select pin %q", selectPin)
	}

	primary, secondary := spimux.New(conn, pin)
	log.Debugf("spimux: sharing bus %s over select pin %s", spiName, selectPin)

	// The second controller shares the same bus but isn't otherwise
	// driven by this tool; resetting it confirms the demux is wired
	// correctly without assuming anything about what's attached there.
	if err := mcp2517fd.New(secondary).Reset(); err != nil {
		log.Warnf("secondary controller reset failed: %v", err)
	}

	return primary, port.Close, nil
}

func parseRequestMode(name string) (mcp2517fd.RequestMode, error) {
	switch name {
	case "normal-canfd":
		return mcp2517fd.RequestNormalCANFD, nil
	case "normal-can2.0":
		return mcp2517fd.RequestNormalCAN2_0, nil
	case "internal-loopback":
		return mcp2517fd.RequestInternalLoopback, nil
	case "external-loopback":
		return mcp2517fd.RequestExternalLoopback, nil
	case "listen-only":
		return mcp2517fd.RequestListenOnly, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", name)
	}
}

func decodeHexPayload(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex payload %q", s)
	}
	buf := make([]byte, len(s)/2)
	for i := range buf {
		var b int
		if _, err := fmt.Sscanf(s[i*2:i*2+2], "%02x", &b); err != nil {
			return nil, fmt.Errorf("invalid hex payload %q: %w", s, err)
		}
		buf[i] = byte(b)
	}
	return buf, nil
}
