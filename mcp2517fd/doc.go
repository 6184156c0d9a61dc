// Package mcp2517fd is a host-side driver for the Microchip MCP2517FD
// external CAN FD controller. It talks to the chip over the injected
// devices.SPIDevice capability, translating configuration, filter, and
// message operations into the chip's SPI command protocol.
//
// The driver does not own a bus; it is handed one via New and never
// retries a failed transaction. Every public method runs to completion
// on the caller's goroutine - there is no background worker and no
// interrupt handling, matching the chip's polled operating contract.
package mcp2517fd
