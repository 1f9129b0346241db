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

package dma

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/memory/arena"
	"github.com/softlatch/mia/hardware/status"
)

// transfers proceed in chunks of this many bytes. pacing, when configured,
// applies between chunks
const chunkSize = 256

// Engine performs asynchronous arena-to-arena copies. A copy claims the
// DMA_ACTIVE status flag for its whole duration and finishes with the
// completion handler, which clears the flag and raises DMA_COMPLETE. Only
// one copy runs at a time.
type Engine struct {
	arena *arena.Arena
	sts   *status.Register
	irqc  *irq.Controller

	transfers sync.WaitGroup

	// delay between chunks, for simulating a hardware transfer rate.
	// nanoseconds
	pace atomic.Int64
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(a *arena.Arena, sts *status.Register, irqc *irq.Controller) *Engine {
	return &Engine{
		arena: a,
		sts:   sts,
		irqc:  irqc,
	}
}

// SetPace sets the delay inserted after every chunk of a transfer. A zero
// pace copies as fast as the scheduler allows.
func (e *Engine) SetPace(d time.Duration) {
	e.pace.Store(int64(d))
}

// CopyBlock starts an asynchronous copy of count bytes from the src arena
// offset to the dst arena offset. Returns true if the transfer was started.
//
// Precondition violations latch MEMORY_ERROR and raise an IRQ cause without
// copying anything: MEMORY_ERROR for a start address outside the arena,
// DMA_ERROR for a zero count, a transfer overrunning the arena, or a
// transfer already in flight.
//
// Overlapping ranges are not rejected. The transfer runs low to high one
// chunk at a time, so a forward overlap reads bytes that earlier chunks
// have already rewritten.
func (e *Engine) CopyBlock(src uint32, dst uint32, count uint16) bool {
	if count == 0 {
		e.fault(irq.DMAError)
		return false
	}

	if !arena.Valid(src) || !arena.Valid(dst) {
		e.fault(irq.MemoryError)
		return false
	}

	if src+uint32(count) > arena.Size || dst+uint32(count) > arena.Size {
		e.fault(irq.DMAError)
		return false
	}

	if !e.sts.TestAndSet(status.DMAActive) {
		e.fault(irq.DMAError)
		return false
	}

	e.transfers.Add(1)
	go e.transfer(src, dst, count)

	return true
}

func (e *Engine) fault(cause uint16) {
	e.sts.Set(status.MemoryError)
	e.irqc.Raise(cause)
}

func (e *Engine) transfer(src uint32, dst uint32, count uint16) {
	defer e.transfers.Done()

	remaining := uint32(count)
	for remaining > 0 {
		n := remaining
		if n > chunkSize {
			n = chunkSize
		}
		copy(e.arena.Mem[dst:dst+n], e.arena.Mem[src:src+n])
		src += n
		dst += n
		remaining -= n

		if p := e.pace.Load(); p > 0 && remaining > 0 {
			time.Sleep(time.Duration(p))
		}
	}

	e.complete()
}

// complete is the equivalent of the hardware completion interrupt. It
// touches the status register and the IRQ controller and nothing else.
func (e *Engine) complete() {
	e.sts.Clear(status.DMAActive)
	e.irqc.Raise(irq.DMAComplete)
}

// Active returns true while a transfer is in flight.
func (e *Engine) Active() bool {
	return e.sts.Test(status.DMAActive)
}

// Wait blocks until any transfer in flight has completed. For use by
// contexts outside the bus deadline: tests, the monitor and the reset path.
func (e *Engine) Wait() {
	e.transfers.Wait()
}
