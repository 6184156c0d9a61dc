package mcp2517fd

// tfnrfnifBit is the "TX/RX FIFO not full / not empty interrupt flag"
// bit of a FIFO status byte 0.
const tfnrfnifBit = 1 << 0

// fifoTxreqUincBits requests transmission of a queued message and
// advances the FIFO head pointer in one write.
const fifoTxreqUincBits = 0x03

// fifoUincBit advances a FIFO's tail pointer after a receive.
const fifoUincBit = 0x01

// Transmit encodes and sends msg over fifoIndex (conventionally the TX
// FIFO, index 2). If blocking is false and the FIFO has no space,
// ErrTxFifoFull is returned immediately; if blocking is true the call
// spins until space frees up, and after queuing the message spins again
// until the FIFO control byte holding TXREQ reads back zero.
func (c *Controller) Transmit(fifoIndex uint16, msg *TxMessage, blocking bool) error {
	statusAddr := fifoStatusAddr(fifoIndex)

	status, err := c.readRegisterByte(statusAddr)
	if err != nil {
		return err
	}
	for status&tfnrfnifBit == 0 {
		if !blocking {
			return ErrTxFifoFull
		}
		status, err = c.readRegisterByte(statusAddr)
		if err != nil {
			return err
		}
	}

	opStatus, err := c.ReadOperationStatus()
	if err != nil {
		return err
	}
	if len(msg.Payload) > 8 && opStatus.Mode != ModeNormalCANFD {
		return &InvalidPayloadLengthError{Length: len(msg.Payload)}
	}

	userAddr, err := c.readSFR32(fifoUserAddrAddr(fifoIndex))
	if err != nil {
		return err
	}
	ramAddr := uint16(userAddr) + ramBase

	if err := c.fifoWrite(ramAddr, msg.Header.AsBytes(), msg.Payload); err != nil {
		return err
	}

	controlByte1 := fifoControlAddr(fifoIndex) + 1
	if err := c.writeRegisterByte(controlByte1, fifoTxreqUincBits); err != nil {
		return err
	}

	if !blocking {
		return nil
	}

	for {
		pending, err := c.readRegisterByte(controlByte1)
		if err != nil {
			return err
		}
		if pending == 0 {
			return nil
		}
	}
}
