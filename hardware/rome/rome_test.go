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

package rome_test

import (
	"testing"

	"github.com/softlatch/mia/hardware/clock"
	"github.com/softlatch/mia/hardware/rome"
	"github.com/softlatch/mia/test"
)

// bootedRome walks a new Rome instance through the reset sequence, leaving
// it banked in and ready to serve the window.
func bootedRome(t *testing.T, kernel []uint8) (*rome.Rome, *clock.Generator) {
	t.Helper()

	g := clock.NewGenerator()
	var rst clock.ResetLine
	rom := rome.NewRome(g, &rst, kernel)

	rom.StartBootSequence()
	g.Tick(5)
	rom.Process()
	test.ExpectEquality(t, rom.State(), rome.StateBootActive)

	return rom, g
}

func TestBootSequence(t *testing.T) {
	g := clock.NewGenerator()
	var rst clock.ResetLine
	rom := rome.NewRome(g, &rst, []uint8{0x4c, 0x00, 0x40})

	test.ExpectEquality(t, rom.State(), rome.StateInactive)
	test.ExpectFailure(t, rom.Active())

	// the window is not served before the boot sequence
	_, ok := rom.Read(0xfffc)
	test.ExpectFailure(t, ok)

	rom.StartBootSequence()
	test.ExpectEquality(t, rom.State(), rome.StateResetSequence)
	test.ExpectSuccess(t, rst.Asserted())
	test.ExpectEquality(t, g.Phase(), clock.PhaseBoot)

	// reset hold requirement not yet met
	rom.Process()
	test.ExpectEquality(t, rom.State(), rome.StateResetSequence)

	g.Tick(4)
	rom.Process()
	test.ExpectEquality(t, rom.State(), rome.StateResetSequence)

	g.Tick(1)
	rom.Process()
	test.ExpectEquality(t, rom.State(), rome.StateBootActive)
	test.ExpectFailure(t, rst.Asserted())
	test.ExpectSuccess(t, rom.Banked())
	test.ExpectSuccess(t, rom.Active())

	// a second call is a no-op while the sequence is running
	rom.StartBootSequence()
	test.ExpectEquality(t, rom.State(), rome.StateBootActive)
}

func TestKernelStream(t *testing.T) {
	kernel := []uint8{0xa9, 0x01, 0x8d, 0x00, 0xc1, 0x4c, 0x05, 0x40}
	rom, g := bootedRome(t, kernel)

	// reset vector points at the loader entry
	d, ok := rom.Read(0xfffc)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, d, 0x00)
	d, ok = rom.Read(0xfffd)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, d, 0xe0)

	// first fetch of the loader program
	d, _ = rom.Read(rome.EntryPoint)
	test.ExpectEquality(t, d, 0x78)

	// first status read begins the transfer
	d, _ = rom.Read(0xe100)
	test.ExpectEquality(t, d, 0x01)
	test.ExpectEquality(t, rom.State(), rome.StateKernelLoading)

	for i, b := range kernel {
		d, _ = rom.Read(0xe100)
		test.ExpectEquality(t, d, 0x01, i)
		d, _ = rom.Read(0xe101)
		test.ExpectEquality(t, d, b, i)
	}
	test.ExpectEquality(t, rom.BytesTransferred(), len(kernel))
	test.ExpectEquality(t, rom.KernelSize(), len(kernel))

	// stream exhausted. the status read latches completion
	d, _ = rom.Read(0xe100)
	test.ExpectEquality(t, d, 0x00)
	test.ExpectEquality(t, rom.State(), rome.StateComplete)

	// the loader can still fetch its jump out of the window
	d, _ = rom.Read(0xe01e)
	test.ExpectEquality(t, d, 0x4c)

	rom.Process()
	test.ExpectEquality(t, rom.State(), rome.StateInactive)
	test.ExpectFailure(t, rom.Banked())
	test.ExpectEquality(t, g.Phase(), clock.PhaseNormal)
}

func TestWindowFiller(t *testing.T) {
	rom, _ := bootedRome(t, []uint8{0xea})

	// beyond the loader program but inside its reserved space
	d, ok := rom.Read(0xe000 + uint16(len(rome.Loader)))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, d, rome.Filler)

	// unmapped window addresses
	d, _ = rom.Read(0xe200)
	test.ExpectEquality(t, d, rome.Filler)
	d, _ = rom.Read(0xfffb)
	test.ExpectEquality(t, d, rome.Filler)
}

func TestEmptyKernel(t *testing.T) {
	rom, g := bootedRome(t, nil)

	// a single status read walks through loading to completion
	d, _ := rom.Read(0xe100)
	test.ExpectEquality(t, d, 0x00)
	test.ExpectEquality(t, rom.State(), rome.StateComplete)

	rom.Process()
	test.ExpectEquality(t, rom.State(), rome.StateInactive)
	test.ExpectEquality(t, g.Phase(), clock.PhaseNormal)
}

func TestWritesIgnored(t *testing.T) {
	rom, _ := bootedRome(t, []uint8{0xea})

	test.ExpectFailure(t, rom.Write(0xe000, 0xff))

	d, _ := rom.Read(rome.EntryPoint)
	test.ExpectEquality(t, d, 0x78)
}
