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

// Package pio models the programmable IO block that synchronises the
// adapter to the host bus.
//
// A host bus cycle is a race. The address lines are valid when chip select
// asserts but the direction lines mean nothing until the host clock has
// risen, which leaves well under half a cycle to put a byte on the bus for
// a read. The hardware program samples the pins on a fixed schedule, pushes
// the address to the servicing core early and blocks on a control token
// telling it how to finish the cycle. The servicing core covers the gap by
// always preparing the read path speculatively; if the cycle turns out to
// be a write the prepared byte is thrown away.
//
// The StateMachine reproduces that handshake in virtual time. Each
// operation advances the cycle clock to the earliest point the pins permit,
// so the ordering constraints of the real hardware hold without any real
// concurrency. The counters record how each cycle resolved, including
// cycles that would have corrupted host execution on real pins.
package pio
