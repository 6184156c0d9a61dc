package mcp2517fd

// SPI command opcodes, packed into the top 4 bits of the 16-bit command
// word sent ahead of every transaction.
const (
	opcodeReset = 0b0000
	opcodeWrite = 0b0010
	opcodeRead  = 0b0011
)

// Special function register base addresses.
const (
	regC1CON    uint16 = 0x000
	regC1NBTCFG uint16 = 0x004
	regOSC      uint16 = 0xE00
)

// ramBase is the start of message RAM; FIFO user addresses are relative
// to it.
const ramBase uint16 = 0x400

// ramEnd is the last valid message RAM address (inclusive).
const ramEnd uint16 = 0xBFF

// fifoControlAddr returns the address of FIFO i's first control byte.
func fifoControlAddr(i uint16) uint16 { return 0x05C + 12*(i-1) }

// fifoStatusAddr returns the address of FIFO i's first status byte.
func fifoStatusAddr(i uint16) uint16 { return 0x060 + 12*(i-1) }

// fifoUserAddrAddr returns the address of FIFO i's 32-bit user-address
// register.
func fifoUserAddrAddr(i uint16) uint16 { return 0x064 + 12*(i-1) }

// filterControlAddr returns the address of filter i's control byte.
func filterControlAddr(i uint16) uint16 { return 0x1D0 + i }

// filterObjectAddr returns the address of filter i's 4-byte object
// register.
func filterObjectAddr(i uint16) uint16 { return 0x1F0 + 8*i }

// filterMaskAddr returns the address of filter i's 4-byte mask
// register.
func filterMaskAddr(i uint16) uint16 { return 0x1F4 + 8*i }

// ClockOutputDivisor divides the CLKO pin output relative to the system
// clock.
type ClockOutputDivisor uint8

const (
	ClockOutputDivideBy1  ClockOutputDivisor = 0b00
	ClockOutputDivideBy2  ClockOutputDivisor = 0b01
	ClockOutputDivideBy4  ClockOutputDivisor = 0b10
	ClockOutputDivideBy10 ClockOutputDivisor = 0b11
)

func clockOutputDivisorFromRegister(register byte) ClockOutputDivisor {
	return ClockOutputDivisor(register >> 5)
}

// SystemClockDivisor divides the oscillator to produce the system
// clock.
type SystemClockDivisor uint8

const (
	SystemClockDivideBy1 SystemClockDivisor = 0b0
	SystemClockDivideBy2 SystemClockDivisor = 0b1
)

func systemClockDivisorFromRegister(register byte) SystemClockDivisor {
	if register&(1<<4) != 0 {
		return SystemClockDivideBy2
	}
	return SystemClockDivideBy1
}

// PLLSetting selects whether the system clock is sourced directly from
// the crystal oscillator or from the 10x PLL.
type PLLSetting uint8

const (
	PLLDirectXTALOscillator PLLSetting = 0b0
	PLLTenTimesPLL          PLLSetting = 0b1
)

func pllSettingFromRegister(register byte) PLLSetting {
	if register&1 != 0 {
		return PLLTenTimesPLL
	}
	return PLLDirectXTALOscillator
}

// ClockConfiguration is the OSC register's oscillator/clock setup.
type ClockConfiguration struct {
	ClockOutput  ClockOutputDivisor
	SystemClock  SystemClockDivisor
	DisableClock bool
	PLL          PLLSetting
}

// AsRegisterByte encodes the configuration into the OSC register byte.
func (c ClockConfiguration) AsRegisterByte() byte {
	var register byte
	register |= byte(c.ClockOutput) << 5
	register |= byte(c.SystemClock) << 4
	if c.DisableClock {
		register |= 1 << 2
	}
	register |= byte(c.PLL)
	return register
}

// ClockConfigurationFromRegisterByte decodes an OSC register byte.
func ClockConfigurationFromRegisterByte(register byte) ClockConfiguration {
	return ClockConfiguration{
		ClockOutput:  clockOutputDivisorFromRegister(register),
		SystemClock:  systemClockDivisorFromRegister(register),
		DisableClock: register&(1<<2) != 0,
		PLL:          pllSettingFromRegister(register),
	}
}

// PayloadSize is the number of payload bytes reserved per message slot
// of a FIFO.
type PayloadSize uint8

const (
	PayloadEightBytes     PayloadSize = 0b000
	PayloadTwelveBytes    PayloadSize = 0b001
	PayloadSixteenBytes   PayloadSize = 0b010
	PayloadTwentyBytes    PayloadSize = 0b011
	PayloadTwentyFourByte PayloadSize = 0b100
	PayloadThirtyTwoBytes PayloadSize = 0b101
	PayloadFortyEightByte PayloadSize = 0b110
	PayloadSixtyFourBytes PayloadSize = 0b111
)

// RetransmissionAttempts bounds how many times the chip retries a
// transmission that lost arbitration or hit a bus error.
type RetransmissionAttempts uint8

const (
	RetransmissionDisabled RetransmissionAttempts = 0b00
	RetransmissionThree    RetransmissionAttempts = 0b01
	RetransmissionUnlimited RetransmissionAttempts = 0b10
)

// FifoConfiguration is the TX/RX FIFO sizing, priority, and
// retransmission policy used by the configuration orchestrator.
type FifoConfiguration struct {
	RxSize     uint8
	TxSize     uint8
	TxPriority uint8
	TxAttempts RetransmissionAttempts
	PayloadLen PayloadSize
	TxEnable   bool
}

// DefaultFifoConfiguration matches the chip's reset defaults: 32-deep
// FIFOs, unlimited retransmits, 8-byte payloads, TX enabled.
func DefaultFifoConfiguration() FifoConfiguration {
	return FifoConfiguration{
		RxSize:     32,
		TxSize:     32,
		TxPriority: 0,
		TxAttempts: RetransmissionUnlimited,
		PayloadLen: PayloadEightBytes,
		TxEnable:   true,
	}
}

func limitFifoSize(size uint8) uint8 {
	if size < 1 {
		return 1
	}
	if size > 32 {
		return 32
	}
	return size
}

// AsRxRegister encodes the RX FIFO control register's size+payload byte
// (FIFO control byte 3).
func (f FifoConfiguration) AsRxRegister() byte {
	return (limitFifoSize(f.RxSize) - 1) | (byte(f.PayloadLen) << 5)
}

// AsTxRegister0 encodes TX FIFO control byte 0 (enable bit).
func (f FifoConfiguration) AsTxRegister0() byte {
	if f.TxEnable {
		return 0b1000_0000
	}
	return 0
}

// AsTxRegister2 encodes TX FIFO control byte 2 (attempts + priority).
func (f FifoConfiguration) AsTxRegister2() byte {
	priority := f.TxPriority
	if priority > 31 {
		priority = 31
	}
	return (byte(f.TxAttempts) << 5) | priority
}

// AsTxRegister3 encodes TX FIFO control byte 3 (size + payload size).
func (f FifoConfiguration) AsTxRegister3() byte {
	return (limitFifoSize(f.TxSize) - 1) | (byte(f.PayloadLen) << 5)
}

// BitRateConfig is the resolved nominal bit-time fields for the
// C1NBTCFG register.
type BitRateConfig struct {
	BRP    uint8
	TSEG1  uint8
	TSEG2  uint8
	SJW    uint8
}

type bitRateEntry struct {
	sysClkHz   uint32
	speedBps   uint32
	config     BitRateConfig
}

// bitRateTable enumerates the supported (system clock, bus speed)
// pairs. An unmatched pair falls back to fallbackBitRateConfig.
var bitRateTable = []bitRateEntry{
	{sysClkHz: 20_000_000, speedBps: 1_000_000, config: BitRateConfig{BRP: 0, TSEG1: 13, TSEG2: 4, SJW: 1}},
	{sysClkHz: 20_000_000, speedBps: 500_000, config: BitRateConfig{BRP: 0, TSEG1: 30, TSEG2: 7, SJW: 1}},
	{sysClkHz: 40_000_000, speedBps: 1_000_000, config: BitRateConfig{BRP: 0, TSEG1: 30, TSEG2: 7, SJW: 1}},
	{sysClkHz: 20_000_000, speedBps: 250_000, config: BitRateConfig{BRP: 0, TSEG1: 62, TSEG2: 15, SJW: 1}},
	{sysClkHz: 40_000_000, speedBps: 500_000, config: BitRateConfig{BRP: 0, TSEG1: 62, TSEG2: 15, SJW: 1}},
	{sysClkHz: 20_000_000, speedBps: 125_000, config: BitRateConfig{BRP: 0, TSEG1: 126, TSEG2: 31, SJW: 1}},
	{sysClkHz: 40_000_000, speedBps: 250_000, config: BitRateConfig{BRP: 0, TSEG1: 126, TSEG2: 31, SJW: 1}},
}

// fallbackBitRateConfig is used for any (sysClkHz, speedBps) pair not
// present in bitRateTable.
var fallbackBitRateConfig = BitRateConfig{BRP: 0, TSEG1: 255, TSEG2: 63, SJW: 1}

// LookupBitRateConfig resolves the nominal bit-time fields for a system
// clock and target bus speed. Unknown pairs fold into the lowest-bitrate
// fallback row; this function never fails.
func LookupBitRateConfig(sysClkHz, speedBps uint32) BitRateConfig {
	for _, entry := range bitRateTable {
		if entry.sysClkHz == sysClkHz && entry.speedBps == speedBps {
			return entry.config
		}
	}
	return fallbackBitRateConfig
}

// AsRegisterBytes encodes the four C1NBTCFG fields into the byte
// sequence the chip expects on the wire: SJW, TSEG1, TSEG2, BRP.
func (b BitRateConfig) AsRegisterBytes() [4]byte {
	return [4]byte{b.SJW & 0x7F, b.TSEG1, b.TSEG2 & 0x7F, b.BRP}
}
