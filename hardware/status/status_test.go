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

package status_test

import (
	"sync"
	"testing"

	"github.com/softlatch/mia/hardware/status"
	"github.com/softlatch/mia/test"
)

func TestRegister(t *testing.T) {
	var r status.Register

	test.ExpectEquality(t, r.Value(), 0x00)
	test.ExpectEquality(t, r.String(), "none")

	r.Set(status.Ready)
	test.ExpectEquality(t, r.Value(), 0x80)
	test.ExpectEquality(t, r.Test(status.Ready), true)
	test.ExpectEquality(t, r.Test(status.Busy), false)

	r.Set(status.DMAActive | status.Busy)
	test.ExpectEquality(t, r.Value(), 0xc1)

	// clearing a flag leaves the others alone
	r.Clear(status.Busy)
	test.ExpectEquality(t, r.Value(), 0xc0)

	// clearing a flag that isn't set is a no-op
	r.Clear(status.MemoryError)
	test.ExpectEquality(t, r.Value(), 0xc0)

	r.SetTo(status.MemoryError, true)
	test.ExpectEquality(t, r.Test(status.MemoryError), true)
	r.SetTo(status.MemoryError, false)
	test.ExpectEquality(t, r.Test(status.MemoryError), false)

	r.Store(status.Ready)
	test.ExpectEquality(t, r.Value(), 0x80)
	test.ExpectEquality(t, r.String(), "READY")

	r.Set(status.IRQPending)
	test.ExpectEquality(t, r.String(), "READY | IRQ_PENDING")
}

func TestTestAndSet(t *testing.T) {
	var r status.Register

	test.ExpectEquality(t, r.TestAndSet(status.DMAActive), true)
	test.ExpectEquality(t, r.Test(status.DMAActive), true)

	// a second claim fails until the flag is released
	test.ExpectEquality(t, r.TestAndSet(status.DMAActive), false)

	r.Clear(status.DMAActive)
	test.ExpectEquality(t, r.TestAndSet(status.DMAActive), true)
}

// flag updates from concurrent contexts must never lose one another's bits.
// the bus loop and the DMA completion handler genuinely run in parallel so
// this is more than a formality
func TestRegisterConcurrency(t *testing.T) {
	var r status.Register
	var wg sync.WaitGroup

	const repeats = 1000

	wg.Add(2)
	go func() {
		defer wg.Done()
		for range repeats {
			r.Set(status.MemoryError)
		}
	}()
	go func() {
		defer wg.Done()
		for range repeats {
			r.Set(status.DMAActive)
			r.Clear(status.DMAActive)
		}
	}()
	wg.Wait()

	test.ExpectEquality(t, r.Test(status.MemoryError), true)
}
