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

// Package cursor defines the programmable pointer record used by the indexed
// memory engine. Each cursor carries a current address, a default address to
// return to on reset or wrap, a limit address, a step size and a set of
// behaviour flags. The host configures cursors byte-at-a-time through the
// CFG_FIELD_SELECT and CFG_DATA registers, for which the Field and SetField
// functions provide the merge rules.
package cursor
