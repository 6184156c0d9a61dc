package mcp2517fd

// rxHeaderBytes is the fixed 8-byte RX message object header skipped
// ahead of the payload on every receive.
const rxHeaderBytes = 8

// Receive reads the next message waiting on fifoIndex (conventionally
// the RX FIFO, index 1) into buf, whose length must be a multiple of 4
// bytes. If no message is waiting, the call spins until one arrives;
// use TryReceive to get ErrRxFifoEmpty immediately instead.
func (c *Controller) Receive(fifoIndex uint16, buf []byte) error {
	return c.receive(fifoIndex, buf, true)
}

// TryReceive is the non-blocking form of Receive.
func (c *Controller) TryReceive(fifoIndex uint16, buf []byte) error {
	return c.receive(fifoIndex, buf, false)
}

func (c *Controller) receive(fifoIndex uint16, buf []byte, blocking bool) error {
	if len(buf)%4 != 0 {
		return &InvalidBufferSizeError{Length: len(buf)}
	}

	statusAddr := fifoStatusAddr(fifoIndex)
	status, err := c.readRegisterByte(statusAddr)
	if err != nil {
		return err
	}
	for status&tfnrfnifBit == 0 {
		if !blocking {
			return ErrRxFifoEmpty
		}
		status, err = c.readRegisterByte(statusAddr)
		if err != nil {
			return err
		}
	}

	userAddr, err := c.readSFR32(fifoUserAddrAddr(fifoIndex))
	if err != nil {
		return err
	}
	ramAddr := uint16(userAddr) + ramBase

	if err := c.fifoRead(ramAddr+rxHeaderBytes, buf); err != nil {
		return err
	}

	return c.writeRegisterByte(fifoControlAddr(fifoIndex)+1, fifoUincBit)
}
