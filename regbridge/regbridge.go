// This file is part of MIA.
//
// MIA is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// MIA is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with MIA.  If not, see <https://www.gnu.org/licenses/>.

// Package regbridge reaches a physical adapter sitting on the bench. The
// bench adapter presents the device's register file over Modbus TCP: each
// 8-bit device register is mirrored by the holding register at the same
// address, with the value in the low byte.
//
// The Client type implements the validate.Port interface so the scenario
// suite runs unchanged against real silicon. Addresses never exceed 0xff
// so the full register file fits comfortably inside the holding register
// space.
package regbridge

import (
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/softlatch/mia/logger"
)

// Client is one connection to a bench adapter.
type Client struct {
	// the goburrow client is not safe for concurrent use
	crit sync.Mutex

	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// NewClient is the preferred method of initialisation for the Client type.
// The connection is established before the function returns.
func NewClient(addr string, timeout time.Duration) (*Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("regbridge: no bench adapter address")
	}
	if timeout <= 0 {
		timeout = time.Second
	}

	h := modbus.NewTCPClientHandler(addr)
	h.Timeout = timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("regbridge: %w", err)
	}

	logger.Logf(logger.Allow, "regbridge", "connected to bench adapter at %s", addr)

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close the connection to the bench adapter.
func (c *Client) Close() error {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.handler.Close()
}

// ReadRegister implements the validate.Port interface.
func (c *Client) ReadRegister(reg uint8) (uint8, error) {
	c.crit.Lock()
	defer c.crit.Unlock()

	res, err := c.client.ReadHoldingRegisters(uint16(reg), 1)
	if err != nil {
		return 0, fmt.Errorf("regbridge: %w", err)
	}
	if len(res) != 2 {
		return 0, fmt.Errorf("regbridge: short response (%d bytes)", len(res))
	}

	// registers are big-endian on the wire and the value is in the low byte
	return res[1], nil
}

// WriteRegister implements the validate.Port interface.
func (c *Client) WriteRegister(reg uint8, data uint8) error {
	c.crit.Lock()
	defer c.crit.Unlock()

	if _, err := c.client.WriteSingleRegister(uint16(reg), uint16(data)); err != nil {
		return fmt.Errorf("regbridge: %w", err)
	}
	return nil
}
