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

// Package status implements the DEVICE_STATUS register. The register is a
// single byte of condition flags shared by every part of the adapter: the bus
// servicing loop sets MEMORY_ERROR and INDEX_OVERFLOW, the service loop tends
// READY and BUSY, and the DMA engine sets and clears DMA_ACTIVE from its
// completion handler. Updates are lock-free so that no flag change can be lost
// to a concurrent read-modify-write from another context.
package status
