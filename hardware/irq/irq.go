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

package irq

import (
	"fmt"
	"sync"

	"github.com/softlatch/mia/hardware/status"
)

// Cause bits. The low byte is visible through IRQ_CAUSE_LOW and the high
// byte through IRQ_CAUSE_HIGH.
const (
	MemoryError        = 0x0001
	IndexOverflow      = 0x0002
	DMAComplete        = 0x0004
	DMAError           = 0x0008
	USBKeyboard        = 0x0010
	USBDeviceChange    = 0x0020
	VideoFrameComplete = 0x0100
	VideoCollision     = 0x0200
)

// Line is the host interrupt output. The line is active-low at the pins so
// implementations drive the pin low when assert is true.
type Line interface {
	SetInterrupt(assert bool)
}

// Controller gathers interrupt causes from every part of the adapter and
// condenses them onto the single host interrupt line. A cause bit raised
// while masked stays latched and fires as soon as the mask permits.
//
// Raise is called from the bus servicing loop and from the DMA completion
// handler, so all state is guarded.
type Controller struct {
	crit sync.Mutex

	cause  uint16
	mask   uint16
	enable bool

	status *status.Register
	line   Line
}

// NewController is the preferred method of initialisation for the Controller
// type. The line argument may be nil.
func NewController(sts *status.Register, line Line) *Controller {
	irq := &Controller{
		status: sts,
		line:   line,
	}
	irq.Reset()
	return irq
}

// Reset restores the power-on state: no causes pending, all causes unmasked,
// interrupts enabled.
func (irq *Controller) Reset() {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	irq.cause = 0x0000
	irq.mask = 0xffff
	irq.enable = true
	irq.update()
}

// update recomputes the pending condition and drives the status register and
// the host line. Must be called with the lock held.
func (irq *Controller) update() {
	pending := irq.enable && irq.cause&irq.mask != 0
	irq.status.SetTo(status.IRQPending, pending)
	if irq.line != nil {
		irq.line.SetInterrupt(pending)
	}
}

// Raise latches the cause bits given. Latching is independent of the mask.
func (irq *Controller) Raise(cause uint16) {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	irq.cause |= cause
	irq.update()
}

// ClearLow clears the low cause bits given. This is the write-one-to-clear
// behaviour of the IRQ_CAUSE_LOW register.
func (irq *Controller) ClearLow(data uint8) {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	irq.cause &^= uint16(data)
	irq.update()
}

// ClearHigh clears the high cause bits given. This is the
// write-one-to-clear behaviour of the IRQ_CAUSE_HIGH register.
func (irq *Controller) ClearHigh(data uint8) {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	irq.cause &^= uint16(data) << 8
	irq.update()
}

// ClearAll clears every pending cause and deasserts the host line.
func (irq *Controller) ClearAll() {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	irq.cause = 0x0000
	irq.update()
}

// CauseLow returns the low byte of the pending causes.
func (irq *Controller) CauseLow() uint8 {
	irq.crit.Lock()
	defer irq.crit.Unlock()
	return uint8(irq.cause)
}

// CauseHigh returns the high byte of the pending causes.
func (irq *Controller) CauseHigh() uint8 {
	irq.crit.Lock()
	defer irq.crit.Unlock()
	return uint8(irq.cause >> 8)
}

// MaskLow returns the low byte of the mask.
func (irq *Controller) MaskLow() uint8 {
	irq.crit.Lock()
	defer irq.crit.Unlock()
	return uint8(irq.mask)
}

// MaskHigh returns the high byte of the mask.
func (irq *Controller) MaskHigh() uint8 {
	irq.crit.Lock()
	defer irq.crit.Unlock()
	return uint8(irq.mask >> 8)
}

// SetMaskLow replaces the low byte of the mask.
func (irq *Controller) SetMaskLow(data uint8) {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	irq.mask = (irq.mask & 0xff00) | uint16(data)
	irq.update()
}

// SetMaskHigh replaces the high byte of the mask.
func (irq *Controller) SetMaskHigh(data uint8) {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	irq.mask = (irq.mask & 0x00ff) | (uint16(data) << 8)
	irq.update()
}

// Enabled returns the value of the IRQ_ENABLE register, 0 or 1.
func (irq *Controller) Enabled() uint8 {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	if irq.enable {
		return 1
	}
	return 0
}

// SetEnable sets the master enable. Any non-zero write enables.
func (irq *Controller) SetEnable(data uint8) {
	irq.crit.Lock()
	defer irq.crit.Unlock()

	irq.enable = data != 0
	irq.update()
}

// Pending returns true if an unmasked cause is pending and interrupts are
// enabled.
func (irq *Controller) Pending() bool {
	irq.crit.Lock()
	defer irq.crit.Unlock()
	return irq.enable && irq.cause&irq.mask != 0
}

func (irq *Controller) String() string {
	irq.crit.Lock()
	defer irq.crit.Unlock()
	return fmt.Sprintf("cause=%#06x mask=%#06x enable=%v", irq.cause, irq.mask, irq.enable)
}
