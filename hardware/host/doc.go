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

// Package host stands in for the 6502 machine the adapter is plugged into.
//
// The adapter only ever sees bus cycles, so the stand-in works at that
// level: the Driver owns the host RAM, masters the bus one cycle at a time
// and can perform the full boot protocol against the adapter, exactly as
// the loader program would when executed by the real CPU. It is the other
// half of every conversation the adapter has, which makes it the natural
// harness for exercising the device from the outside.
package host
