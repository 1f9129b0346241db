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

// Package hardware assembles the emulated components of the adapter into a
// single machine. The MIA type is the root of the hardware hierarchy and is
// the only type most callers need: it presents the adapter to the host as
// three signals (the data bus, the reset line and the interrupt line) and to
// the rest of the project as a set of exported component fields.
//
// A bus cycle enters through BusRead() or BusWrite(). The address decides who
// services it: the boot ROM window when banked in, the register file when the
// address falls inside the register block, nobody otherwise. Whoever services
// it, the cycle ticks the clock and runs the housekeeping that the real
// device performs between chip select interrupts.
//
// The copy service started by Start() stands in for the device's worker
// core. It drains the command queue fed by the COPY_BLOCK command and feeds
// the DMA engine. The service runs on its own goroutine; the separation
// between the bus servicing side and the worker side is the same one the
// firmware draws between its two cores, and the synchronisation points are
// the same too: the command queue in one direction, the status register and
// interrupt causes in the other.
//
// Entry points are serialised: there is only one bus master at a time. The
// host driver, the monitor and the register bridge can therefore share a
// machine without concern.
package hardware
