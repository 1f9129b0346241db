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

// Package dma implements the block copy engine. A bus cycle is far too
// short to move a block of arena memory, so the COPY_BLOCK command travels
// through the inter-core queue to the service loop, which snapshots the
// source and target cursor addresses and hands them here. The copy then
// proceeds independently of the bus; the host learns of the outcome through
// the DMA_ACTIVE status flag and the DMA_COMPLETE interrupt.
//
// Cursors are never modified by a copy. Only arena bytes change.
package dma
