package mcp2517fd

import "encoding/binary"

// filterEnableBit marks a filter-control register byte as active.
const filterEnableBit = 1 << 7

// filterWord is the common 32-bit bit layout shared by the filter
// object and filter mask registers: rsv(1) | exide-or-mide(1) |
// sid11(1) | eid(18) | sid(11), packed MSB-first then byte-swapped to
// little-endian for the wire, same convention as a message header word.
type filterWord struct {
	exideOrMide bool
	sid11       bool
	eid         uint32
	sid         uint16
}

func (w filterWord) asUint32() uint32 {
	var value uint32
	if w.exideOrMide {
		value |= 1 << 30
	}
	if w.sid11 {
		value |= 1 << 29
	}
	value |= (w.eid & extendedLowMask) << 11
	value |= uint32(w.sid & standardIDMask)
	return value
}

func (w filterWord) asRegisterBytes() [4]byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], w.asUint32())
	return buf
}

// Filter is a CAN acceptance filter: an index into the chip's 32
// filter/mask slots, plus the object and mask bitfields programmed into
// it. Lower index means higher priority.
type Filter struct {
	index      uint8
	filterBits filterWord
	maskBits   filterWord
}

// NewFilter creates an empty filter (no mask bits set) matching id, at
// the given slot index. The second return is false if index exceeds 31.
func NewFilter(id ID, index uint8) (Filter, bool) {
	if index > 31 {
		return Filter{}, false
	}
	f := Filter{index: index}
	f.setID(id)
	return f, true
}

func (f *Filter) setID(id ID) {
	if id.extended() {
		eid, sid := splitExtended(id.Raw())
		f.filterBits.eid = eid
		f.filterBits.sid = sid
	} else {
		f.filterBits.sid = uint16(id.Raw())
	}
}

// SetMaskStandardID sets the mask's standard-ID bits.
func (f *Filter) SetMaskStandardID(mask uint16) {
	f.maskBits.sid = mask & standardIDMask
}

// SetMaskExtendedID sets the mask's extended-ID bits, split across the
// EID/SID fields the same way the filter's own ID is.
func (f *Filter) SetMaskExtendedID(mask uint32) {
	eid, sid := splitExtended(mask)
	f.maskBits.eid = eid
	f.maskBits.sid = sid
}

// MatchStandardOnly restricts the filter to standard-ID frames only.
func (f *Filter) MatchStandardOnly() {
	f.maskBits.exideOrMide = true
	f.filterBits.exideOrMide = false
}

// MatchExtendedOnly restricts the filter to extended-ID frames only.
func (f *Filter) MatchExtendedOnly() {
	f.maskBits.exideOrMide = true
	f.filterBits.exideOrMide = true
}

// DisableFilter clears filter i's enable bit. Written directly rather
// than read-modify-write: the chip only ever sees this as the first
// step of enabling a different configuration.
func (c *Controller) DisableFilter(i uint8) error {
	return c.writeRegisterByte(filterControlAddr(uint16(i)), 0x00)
}

// EnableFilter routes filter i's matches to fifoIndex and marks it
// active, in two writes: the FIFO-routing byte first, then the same
// byte with the enable bit set.
func (c *Controller) EnableFilter(fifoIndex uint16, i uint8) error {
	addr := filterControlAddr(uint16(i))
	if err := c.writeRegisterByte(addr, byte(fifoIndex)); err != nil {
		return err
	}
	return c.writeRegisterByte(addr, filterEnableBit|byte(fifoIndex))
}

// SetFilterObject programs filter f's object and mask registers and
// enables it, routing matches to FIFO 1.
func (c *Controller) SetFilterObject(f Filter) error {
	if err := c.DisableFilter(f.index); err != nil {
		return err
	}
	objectBytes := f.filterBits.asRegisterBytes()
	if err := c.writeRegisterBytes(filterObjectAddr(uint16(f.index)), objectBytes[:]); err != nil {
		return err
	}
	maskBytes := f.maskBits.asRegisterBytes()
	if err := c.writeRegisterBytes(filterMaskAddr(uint16(f.index)), maskBytes[:]); err != nil {
		return err
	}
	return c.writeRegisterByte(filterControlAddr(uint16(f.index)), filterEnableBit|1)
}
