package mcp2517fd

import "encoding/binary"

// DLC is the 4-bit Data Length Code the chip uses in place of a raw
// byte count; not every value in [0,15] is defined.
type DLC uint8

const (
	DLCZero DLC = iota
	DLCOne
	DLCTwo
	DLCThree
	DLCFour
	DLCFive
	DLCSix
	DLCSeven
	DLCEight
	DLCTwelve
	DLCSixteen
	DLCTwenty
	DLCTwentyFour
	DLCThirtyTwo
	DLCFortyEight
	DLCSixtyFour
)

// dlcByteCounts is indexed by DLC and holds the payload byte count it
// represents.
var dlcByteCounts = [...]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20, 24, 32, 48, 64}

// Bytes returns the payload byte count this DLC represents.
func (d DLC) Bytes() int { return dlcByteCounts[d] }

// dlcFromLength returns the smallest DLC whose byte count is >= length,
// and whether such a code exists (length must be <= 64).
func dlcFromLength(length int) (DLC, bool) {
	for code, count := range dlcByteCounts {
		if count >= length {
			return DLC(code), true
		}
	}
	return 0, false
}

// MessageKind describes the shape of a class of transmit messages: its
// maximum payload size and whether it uses the CAN FD or classical CAN
// framing. It plays the role of the original driver's Can20<L>/CanFd<L>
// compile-time type witnesses, collapsed into a runtime value since Go
// has no const generics.
type MessageKind struct {
	maxPayloadBytes int
	canFD           bool
	bitRateSwitch   bool
}

// CAN20 returns a classical CAN message kind with the given maximum
// payload length (conventionally 4 or 8).
func CAN20(maxPayloadBytes int) MessageKind {
	return MessageKind{maxPayloadBytes: maxPayloadBytes}
}

// CANFD returns a CAN FD message kind with the given maximum payload
// length (a multiple of 4, up to 64) and bit-rate-switch setting.
func CANFD(maxPayloadBytes int, bitRateSwitch bool) MessageKind {
	return MessageKind{maxPayloadBytes: maxPayloadBytes, canFD: true, bitRateSwitch: bitRateSwitch}
}

// MaxPayloadBytes returns the kind's maximum payload length.
func (k MessageKind) MaxPayloadBytes() int { return k.maxPayloadBytes }

// TxHeader is the first 8 bytes of a transmit message object, packed
// MSB-first within each of its two 32-bit words.
type TxHeader struct {
	sid11                    bool
	extendedIdentifier       uint32 // 18 bits
	standardIdentifier       uint16 // 11 bits
	sequence                 uint8  // 7 bits
	errorStatusIndicator     bool
	fdFrame                  bool
	bitRateSwitch            bool
	remoteTransmissionRequest bool
	identifierExtensionFlag  bool
	dataLengthCode           DLC
}

func (h TxHeader) word0() uint32 {
	var w uint32
	if h.sid11 {
		w |= 1 << 29
	}
	w |= (h.extendedIdentifier & extendedLowMask) << 11
	w |= uint32(h.standardIdentifier & standardIDMask)
	return w
}

func (h TxHeader) word1() uint32 {
	var w uint32
	w |= uint32(h.sequence&0x7F) << 9
	if h.errorStatusIndicator {
		w |= 1 << 8
	}
	if h.fdFrame {
		w |= 1 << 7
	}
	if h.bitRateSwitch {
		w |= 1 << 6
	}
	if h.remoteTransmissionRequest {
		w |= 1 << 5
	}
	if h.identifierExtensionFlag {
		w |= 1 << 4
	}
	w |= uint32(h.dataLengthCode & 0x0F)
	return w
}

// AsBytes packs the header into its 8-byte wire form: each 32-bit word
// is assembled MSB-first then byte-swapped to little-endian, matching
// how the chip reads message RAM.
func (h TxHeader) AsBytes() [8]byte {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], h.word0())
	binary.LittleEndian.PutUint32(buf[4:8], h.word1())
	return buf
}

// TxMessage is a validated transmit message object: header plus the
// exact payload bytes that will be written to message RAM.
type TxMessage struct {
	Header  TxHeader
	Payload []byte
}

// NewTxMessage validates payload against kind and builds the header for
// id, per the chip's framing rules:
//  1. payload length must not exceed kind's maximum.
//  2. kind's maximum must be a multiple of 4 (message RAM is word
//     addressed).
//  3. the DLC is the smallest supported code whose byte count covers
//     the payload.
//  4. the FD-frame and bit-rate-switch bits follow kind; identifiers
//     are split into extended/standard fields as needed.
func NewTxMessage(kind MessageKind, payload []byte, id ID) (*TxMessage, error) {
	if len(payload) > kind.maxPayloadBytes {
		return nil, &InvalidLengthError{Length: len(payload)}
	}
	if kind.maxPayloadBytes%4 != 0 {
		return nil, &InvalidTypeSizeError{Length: kind.maxPayloadBytes}
	}

	dlc, ok := dlcFromLength(len(payload))
	if !ok {
		return nil, &InvalidLengthError{Length: len(payload)}
	}

	header := TxHeader{
		fdFrame:        kind.canFD,
		dataLengthCode: dlc,
	}
	if kind.canFD && kind.bitRateSwitch {
		header.bitRateSwitch = true
	}

	if id.extended() {
		eid, sid := splitExtended(id.Raw())
		header.extendedIdentifier = eid
		header.standardIdentifier = sid
		header.identifierExtensionFlag = true
	} else {
		header.standardIdentifier = uint16(id.Raw())
	}

	// Message RAM is word addressed: pad the payload up to a multiple of
	// 4 bytes regardless of what the DLC reports, matching the chip's
	// actual RAM footprint for this message object.
	padded := make([]byte, (len(payload)+3)&^3)
	copy(padded, payload)

	return &TxMessage{Header: header, Payload: padded}, nil
}

// RxHeader is the decoded first 8 bytes of a received message object.
type RxHeader struct {
	sid11                     bool
	extendedIdentifier        uint32
	standardIdentifier        uint16
	filterHit                 uint8
	errorStatusIndicator      bool
	fdFrame                   bool
	bitRateSwitch             bool
	remoteTransmissionRequest bool
	identifierExtensionFlag   bool
	dataLengthCode            DLC
}

// DecodeRxHeader unpacks an 8-byte RX message object header, reversing
// the little-endian word swap applied on the wire.
func DecodeRxHeader(buf [8]byte) RxHeader {
	word0 := binary.LittleEndian.Uint32(buf[0:4])
	word1 := binary.LittleEndian.Uint32(buf[4:8])

	return RxHeader{
		sid11:                     word0&(1<<29) != 0,
		extendedIdentifier:        (word0 >> 11) & extendedLowMask,
		standardIdentifier:        uint16(word0 & standardIDMask),
		filterHit:                 uint8((word1 >> 11) & 0x1F),
		errorStatusIndicator:      word1&(1<<8) != 0,
		fdFrame:                   word1&(1<<7) != 0,
		bitRateSwitch:             word1&(1<<6) != 0,
		remoteTransmissionRequest: word1&(1<<5) != 0,
		identifierExtensionFlag:   word1&(1<<4) != 0,
		dataLengthCode:            DLC(word1 & 0x0F),
	}
}

// GetID reconstructs the CAN identifier carried by the header.
func (h RxHeader) GetID() ID {
	if h.identifierExtensionFlag {
		eid, _ := NewExtendedID(joinExtended(h.extendedIdentifier, h.standardIdentifier))
		return eid
	}
	sid, _ := NewStandardID(h.standardIdentifier)
	return sid
}

// DataLengthCode returns the header's DLC field.
func (h RxHeader) DataLengthCode() DLC { return h.dataLengthCode }
