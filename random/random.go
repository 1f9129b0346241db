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

package random

import (
	"math/rand"
	"time"
)

// Clock defines the time base used by the Random type. The Generator type in
// the hardware/clock package satisfies this interface.
type Clock interface {
	Cycles() uint64
}

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Random is a random number generator that is sensitive to time within the
// emulation. Required for parallel emulations and scripted validation runs.
type Random struct {
	clk Clock

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(clk Clock) *Random {
	return &Random{
		clk: clk,
	}
}

// new RNG from the standard library, seeded from the clock
func (rnd *Random) rand() *rand.Rand {
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(int64(rnd.clk.Cycles())))
	}
	return rand.New(rand.NewSource(baseSeed + int64(rnd.clk.Cycles())))
}

// Clocked returns a random number between 0 and n, derived from the current
// cycle count of the adapter clock. It will always return the same number for
// the same cycle count.
func (rnd *Random) Clocked(n int) int {
	return rnd.rand().Intn(n)
}

// Unclocked returns a random number between 0 and n, regardless of the current
// state of the adapter clock.
func (rnd *Random) Unclocked(n int) int {
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(0)).Intn(n)
	}
	return rand.New(rand.NewSource(baseSeed + int64(time.Now().Nanosecond()))).Intn(n)
}
