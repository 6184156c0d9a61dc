package mcp2517fd

// OperationMode is the chip's current or requested operating mode, the
// 3-bit field held in bits 7:5 of C1CON's status byte (byte 2).
type OperationMode uint8

const (
	ModeNormalCANFD        OperationMode = 0b000
	ModeSleep              OperationMode = 0b001
	ModeInternalLoopback   OperationMode = 0b010
	ModeListenOnly         OperationMode = 0b011
	ModeConfiguration      OperationMode = 0b100
	ModeExternalLoopback   OperationMode = 0b101
	ModeNormalCAN2_0       OperationMode = 0b110
	ModeRestrictedOperation OperationMode = 0b111
)

// OperationModeFromRegisterByte decodes the mode field of a C1CON
// status byte. Reserved/unrecognized encodings never occur in a 3-bit
// field, but the switch still falls through to RestrictedOperation to
// match the chip's own default mapping rather than rejecting.
func OperationModeFromRegisterByte(register byte) OperationMode {
	switch register >> 5 {
	case 0b000:
		return ModeNormalCANFD
	case 0b001:
		return ModeSleep
	case 0b010:
		return ModeInternalLoopback
	case 0b011:
		return ModeListenOnly
	case 0b100:
		return ModeConfiguration
	case 0b101:
		return ModeExternalLoopback
	case 0b110:
		return ModeNormalCAN2_0
	default:
		return ModeRestrictedOperation
	}
}

// OperationStatus is the full decode of a C1CON status byte (byte 2 of
// the register, holding OPMOD and the sibling configuration bits).
type OperationStatus struct {
	Mode                     OperationMode
	TxqReserved              bool
	StoreTransmitEvent       bool
	ErrorTransListenOnlyMode bool
	TransmitESIGateway       bool
	RestrictRetransmission   bool
}

// OperationStatusFromRegisterByte decodes a C1CON status byte into its
// constituent fields.
func OperationStatusFromRegisterByte(register byte) OperationStatus {
	return OperationStatus{
		Mode:                     OperationModeFromRegisterByte(register),
		TxqReserved:              register&(1<<4) != 0,
		StoreTransmitEvent:       register&(1<<3) != 0,
		ErrorTransListenOnlyMode: register&(1<<2) != 0,
		TransmitESIGateway:       register&(1<<1) != 0,
		RestrictRetransmission:   register&1 != 0,
	}
}

// OscillatorStatus is the decode of the OSC register's status byte
// (byte 1, immediately following the clock control byte at regOSC),
// reporting which parts of the clock tree have locked since the last
// configuration write.
type OscillatorStatus struct {
	PLLReady               bool
	OscillatorReady        bool
	SynchronizedClockReady bool
}

// OscillatorStatusFromRegisterByte decodes an OSC status byte.
func OscillatorStatusFromRegisterByte(register byte) OscillatorStatus {
	return OscillatorStatus{
		PLLReady:               register&(1<<0) != 0,
		OscillatorReady:        register&(1<<1) != 0,
		SynchronizedClockReady: register&(1<<4) != 0,
	}
}

// RequestMode is the subset of OperationMode that Configure accepts as
// its final target mode; Sleep, Configuration and RestrictedOperation are
// not part of it (Configure enters Configuration mode on its own).
type RequestMode uint8

const (
	RequestNormalCANFD      RequestMode = iota
	RequestInternalLoopback
	RequestExternalLoopback
	RequestListenOnly
	RequestNormalCAN2_0
)

// ToOperationMode maps a RequestMode onto the OperationMode the chip
// reports back once it has completed the transition.
func (r RequestMode) ToOperationMode() OperationMode {
	switch r {
	case RequestInternalLoopback:
		return ModeInternalLoopback
	case RequestExternalLoopback:
		return ModeExternalLoopback
	case RequestListenOnly:
		return ModeListenOnly
	case RequestNormalCAN2_0:
		return ModeNormalCAN2_0
	default:
		return ModeNormalCANFD
	}
}
