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

package clock_test

import (
	"testing"
	"time"

	"github.com/softlatch/mia/hardware/clock"
	"github.com/softlatch/mia/test"
)

func TestPhases(t *testing.T) {
	g := clock.NewGenerator()

	// boot phase divides exactly from the system clock
	test.ExpectEquality(t, g.Phase(), clock.PhaseBoot)
	test.ExpectEquality(t, g.Frequency(), 100000.0)
	test.ExpectEquality(t, g.Period(), 10*time.Microsecond)
	test.ExpectSuccess(t, g.Stable())

	// as does the normal phase
	g.SetPhase(clock.PhaseNormal)
	test.ExpectEquality(t, g.Phase(), clock.PhaseNormal)
	test.ExpectEquality(t, g.Frequency(), 1000000.0)
	test.ExpectEquality(t, g.Period(), time.Microsecond)
	test.ExpectSuccess(t, g.Stable())
}

func TestSetFrequency(t *testing.T) {
	g := clock.NewGenerator()

	test.ExpectSuccess(t, g.SetFrequency(500000))
	test.ExpectSuccess(t, g.Deviation() <= clock.MaxDeviation)

	test.ExpectFailure(t, g.SetFrequency(0))
}

func TestTimeBase(t *testing.T) {
	g := clock.NewGenerator()

	// five boot cycles is the ROM emulator's reset hold
	g.Tick(5)
	test.ExpectEquality(t, g.Cycles(), 5)
	test.ExpectEquality(t, g.Elapsed(), 50*time.Microsecond)

	g.SetPhase(clock.PhaseNormal)
	g.Tick(1000)
	test.ExpectEquality(t, g.Cycles(), 1005)
	test.ExpectEquality(t, g.Elapsed(), 50*time.Microsecond+time.Millisecond)

	// a disabled generator does not advance time
	g.Enable(false)
	g.Tick(1000)
	test.ExpectEquality(t, g.Cycles(), 1005)
	g.Enable(true)

	// reset returns to the boot phase but does not rewind time
	g.Reset()
	test.ExpectEquality(t, g.Phase(), clock.PhaseBoot)
	test.ExpectEquality(t, g.Cycles(), 1005)
}

func TestResetLine(t *testing.T) {
	var l clock.ResetLine

	test.ExpectFailure(t, l.Asserted())

	l.Assert(100 * time.Microsecond)
	test.ExpectSuccess(t, l.Asserted())
	test.ExpectEquality(t, l.HeldFor(150*time.Microsecond), 50*time.Microsecond)

	// too early for the automatic release
	l.Process(200 * time.Microsecond)
	test.ExpectSuccess(t, l.Asserted())

	l.Process(100*time.Microsecond + clock.MinAssertTime)
	test.ExpectFailure(t, l.Asserted())
	test.ExpectEquality(t, l.HeldFor(20*time.Millisecond), 0)

	// explicit release ahead of the minimum assertion time
	l.Assert(time.Second)
	l.Release()
	test.ExpectFailure(t, l.Asserted())
}
