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

// Package bus is the host-facing front-end of the adapter. The Front type
// services bus cycles delivered by the pio state machine, decoding the
// eight bit local address into one of the register windows or the shared
// register space and moving a byte accordingly.
//
// The front-end honours the bus timing by speculating. The byte for a read
// is prepared before the cycle's direction is known; the auto-step a data
// port read implies is deferred until the direction lines confirm the
// cycle really is a read. A cycle that resolves as a write discards the
// speculation, so a write through the data port steps the cursor exactly
// once.
//
// Everything reachable from here completes in bounded work. The one
// exception, block copies, is split off through the inter-core command
// queue and serviced by the worker core.
package bus
