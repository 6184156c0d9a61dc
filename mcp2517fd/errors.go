package mcp2517fd

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions that carry no extra data. Callers
// distinguish them with errors.Is.
var (
	// ErrConfigurationModeTimeout is returned when the chip does not
	// reach Configuration mode within the 2ms mode-change deadline.
	ErrConfigurationModeTimeout = errors.New("mcp2517fd: timed out waiting for configuration mode")

	// ErrRequestModeTimeout is returned when the chip does not reach
	// the configured target mode within the 2ms mode-change deadline.
	ErrRequestModeTimeout = errors.New("mcp2517fd: timed out waiting for requested mode")

	// ErrClock is returned when the injected clock cannot produce a
	// reading, or arithmetic on it saturates.
	ErrClock = errors.New("mcp2517fd: clock error")

	// ErrTxFifoFull is returned by a non-blocking Transmit when the TX
	// FIFO has no space.
	ErrTxFifoFull = errors.New("mcp2517fd: tx fifo full")

	// ErrRxFifoEmpty is returned by a non-blocking Receive when the RX
	// FIFO has no message waiting.
	ErrRxFifoEmpty = errors.New("mcp2517fd: rx fifo empty")
)

// BusError wraps a transport failure reported by the injected
// devices.SPIDevice. The underlying error is reachable with errors.Unwrap
// or errors.As; the driver never interprets it.
type BusError struct {
	Err error
}

func (e *BusError) Error() string { return fmt.Sprintf("mcp2517fd: bus error: %v", e.Err) }

func (e *BusError) Unwrap() error { return e.Err }

func busErr(err error) error {
	if err == nil {
		return nil
	}
	return &BusError{Err: err}
}

// InvalidPayloadLengthError means the payload length is not permitted
// in the controller's current operation mode (a >8 byte payload while
// not in NormalCANFD).
type InvalidPayloadLengthError struct{ Length int }

func (e *InvalidPayloadLengthError) Error() string {
	return fmt.Sprintf("mcp2517fd: invalid payload length %d for current mode", e.Length)
}

// InvalidRamAddressError means a computed message-RAM address fell
// outside the chip's valid [0x400, 0xBFF] window.
type InvalidRamAddressError struct{ Address uint16 }

func (e *InvalidRamAddressError) Error() string {
	return fmt.Sprintf("mcp2517fd: invalid RAM address %#03x", e.Address)
}

// InvalidBufferSizeError means a receive buffer's length is not a
// multiple of 4 bytes.
type InvalidBufferSizeError struct{ Length int }

func (e *InvalidBufferSizeError) Error() string {
	return fmt.Sprintf("mcp2517fd: invalid buffer size %d, must be a multiple of 4", e.Length)
}

// InvalidTypeSizeError means a message kind's maximum payload length is
// not a multiple of 4 bytes.
type InvalidTypeSizeError struct{ Length int }

func (e *InvalidTypeSizeError) Error() string {
	return fmt.Sprintf("mcp2517fd: invalid message kind size %d, must be a multiple of 4", e.Length)
}

// InvalidLengthError means a payload exceeds the maximum length
// supported by the requested message kind.
type InvalidLengthError struct{ Length int }

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("mcp2517fd: invalid payload length %d for message kind", e.Length)
}
