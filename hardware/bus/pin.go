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

package bus

import "sync/atomic"

// IRQPin is the host interrupt output. The physical pin is active-low;
// here the pin is recorded in its logical sense, asserted meaning the host
// should take an interrupt.
//
// IRQPin implements the irq.Line interface.
type IRQPin struct {
	asserted atomic.Bool
}

// SetInterrupt drives the pin.
func (p *IRQPin) SetInterrupt(assert bool) {
	p.asserted.Store(assert)
}

// Asserted returns the logical state of the pin. The host samples this at
// the end of every instruction.
func (p *IRQPin) Asserted() bool {
	return p.asserted.Load()
}
