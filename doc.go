// Package devices holds the capability ports that the MCP2517FD CAN FD
// controller driver (package mcp2517fd) is injected with: an SPI bus
// with chip-select, and a monotonic clock used for mode-transition
// deadlines. Concrete backings for real hardware live under
// internal/hostspi; the driver itself never names them directly.
package devices
