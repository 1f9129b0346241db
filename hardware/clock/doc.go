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

// Package clock generates the host clock and drives the host reset line.
//
// The adapter is the clock source for the whole system. During the boot
// phase the host is clocked at 100kHz, slow enough for the ROM emulator to
// answer every fetch; once the kernel is running the generator switches to
// the normal 1MHz phase.
//
// The Generator doubles as the adapter's time base. Components that need
// the passage of time, the ROM emulator's reset hold for instance, read
// Generator.Elapsed rather than the wall clock, so emulation speed does not
// affect behaviour.
package clock
