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

// Package regmap decodes the eight bit local address space that the host
// sees. The address space divides into two halves on the high bit of the
// address.
//
// When the high bit is clear the address selects one of eight register
// windows, each sixteen bytes apart. The low nibble selects the register
// within the window:
//
//	0x00	IDX_SELECT
//	0x01	DATA_PORT
//	0x02	CFG_FIELD_SELECT
//	0x03	CFG_DATA
//	0x04	COMMAND
//	0x05 to 0x0f	reserved
//
// When the high bit is set the address selects a shared register. The
// recognized shared registers are DEVICE_STATUS (0xf0), the IRQ cause, mask
// and enable registers (0xf1 to 0xf5) and SHARED_COMMAND (0xff). All other
// shared addresses are reserved.
//
// Reserved registers read as zero and ignore writes. That rule is enforced
// by the users of this package and not by the decoder itself, which simply
// reports what an address selects.
package regmap
