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

package arena

import (
	"encoding/hex"
)

// Size of the arena in bytes. Cursor addresses at or beyond this value fail
// at access time.
const Size = 0x40000

// Arena is the flat byte array reached through the indexed memory engine.
// The Mem field is exported for the DMA engine and the monitor; neither the
// host nor the engine ever hands out an address beyond Size.
type Arena struct {
	Mem []uint8
}

// NewArena is the preferred method of initialisation for the Arena type.
func NewArena() *Arena {
	return &Arena{
		Mem: make([]uint8, Size),
	}
}

// Valid returns true if the address is inside the arena.
func Valid(address uint32) bool {
	return address < Size
}

// Read returns the byte at the address given. The address must have been
// validated by the caller.
func (a *Arena) Read(address uint32) uint8 {
	return a.Mem[address]
}

// Write stores the byte at the address given. The address must have been
// validated by the caller.
func (a *Arena) Write(address uint32, data uint8) {
	a.Mem[address] = data
}

// Reset zeroes the entire arena.
func (a *Arena) Reset() {
	for i := range a.Mem {
		a.Mem[i] = 0
	}
}

// Snapshot creates a copy of the arena in its current state.
func (a *Arena) Snapshot() *Arena {
	n := *a
	n.Mem = make([]uint8, len(a.Mem))
	copy(n.Mem, a.Mem)
	return &n
}

// Dump returns a hex dump of the region starting at the address given. The
// region is cropped to the end of the arena.
func (a *Arena) Dump(address uint32, length uint32) string {
	if address >= Size {
		return ""
	}
	if length > Size-address {
		length = Size - address
	}
	return hex.Dump(a.Mem[address : address+length])
}
