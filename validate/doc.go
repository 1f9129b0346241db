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

// Package validate exercises the register protocol of the adapter from the
// host's point of view. Every scenario talks to the device purely through
// register reads and writes, so the same suite can run against the emulated
// adapter (through the Loopback type) or against a physical device behind a
// bench adapter (through the regbridge package).
//
// Scenarios are independent of each other. Each one starts by issuing a
// factory reset and asserts only on state that is observable through the
// register file.
package validate
