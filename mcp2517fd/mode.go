package mcp2517fd

import "github.com/atlas-aero/rt-mcp2517/devices"

// modeChangeDeadline is the wall-clock budget the chip is given to
// complete a mode transition once requested.
const modeChangeDeadline devices.Milliseconds = 2

const abortAllTransactionsBit = 1 << 3

// enableMode requests target via C1CON and polls until the chip reports
// it has transitioned, or until clock runs past a 2ms deadline. The
// poll is unbounded in iterations but bounded in wall time; there is no
// sleep between reads, the clock is the only pacing mechanism.
func (c *Controller) enableMode(target OperationMode, clock devices.Clock, timeoutErr error) error {
	current, err := c.readRegisterByte(regC1CON + 3)
	if err != nil {
		return err
	}
	request := (current &^ 0x07) | abortAllTransactionsBit | byte(target&0x07)
	if err := c.writeRegisterByte(regC1CON+3, request); err != nil {
		return err
	}

	now, err := clock.Now()
	if err != nil {
		return ErrClock
	}
	deadline, ok := now.CheckedAdd(modeChangeDeadline)
	if !ok {
		return ErrClock
	}

	for {
		status, err := c.ReadOperationStatus()
		if err != nil {
			return err
		}
		if status.Mode == target {
			return nil
		}

		now, err := clock.Now()
		if err != nil {
			return ErrClock
		}
		if now.After(deadline) {
			return timeoutErr
		}
	}
}
