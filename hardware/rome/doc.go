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

// Package rome is the ROM emulator that bootstraps the host. The host has
// no ROM of its own; on reset it fetches its reset vector from high memory
// and the adapter must be standing there with an answer.
//
// The boot sequence runs the host at the slow boot clock so every fetch can
// be serviced without real timing pressure. Rome walks through five states:
//
//	INACTIVE -> RESET_SEQUENCE -> BOOT_ACTIVE -> KERNEL_LOADING -> COMPLETE
//
// StartBootSequence asserts the host reset line and enters RESET_SEQUENCE.
// Once the line has been held long enough the ROM window is banked into the
// host's high memory and the host is let out of reset. The host then fetches
// the reset vector, lands in the embedded loader program and streams the
// kernel image into its own RAM through the kernel status and data
// addresses. When the stream is exhausted the loader jumps into the kernel;
// Rome switches the clock to the normal phase, banks the window out and goes
// back to sleep. From that point the host talks to the register file.
package rome
