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

// Package memory implements the indexed memory engine: 256 programmable
// cursors standing between the host's register protocol and the 256 KiB
// arena. The cursor and arena sub-packages help with this.
//
// The host never addresses the arena directly. Every data access goes
// through the cursor named by a register window and the interesting
// behaviour (auto-stepping, wrap-on-limit, access validation) happens here:
//
//	HOST ---- bus front-end ---- windows ---- MEMORY ---- arena
//	                                            |
//	                             service loop --*-- DMA
//
// The asterisk marks the one point of cross-core sharing. The service loop
// reads cursor addresses when it dispatches a block copy; everything else
// reaches the cursor table from the bus servicing side.
//
// The read path is split in two, ReadCursor followed by StepCursor, so the
// bus front-end can read speculatively while the bus direction is still
// unknown and settle the auto-step side effect only once the cycle is
// confirmed as a read.
//
// A data access through a cursor pointing outside the arena reads zero or
// discards the write, latches MEMORY_ERROR and INDEX_OVERFLOW, and leaves
// the cursor where it was. Out of range addresses are legal in cursor
// configuration and only fail when used.
package memory
