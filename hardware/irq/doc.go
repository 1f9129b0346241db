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

// Package irq implements the interrupt controller. Sixteen cause bits are
// latched as events happen around the adapter and a sixteen bit mask with a
// master enable decides whether the host interrupt line is asserted. The
// host inspects causes through the IRQ_CAUSE registers and acknowledges them
// by writing ones to the bits it has handled.
//
// The pending condition, reflected in both the DEVICE_STATUS register and the
// host line, is recomputed after every operation so the two can never
// disagree with the cause and mask state.
package irq
