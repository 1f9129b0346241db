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

package clock

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Host clock frequencies for the two operating phases. The boot phase runs
// slow so the ROM emulator can service reads without bus timing pressure.
const (
	FreqBoot   = 100000
	FreqNormal = 1000000
)

// SysClk is the frequency of the controller's own clock, from which the
// host clock is divided down.
const SysClk = 125000000

// MaxDeviation is the largest relative frequency error the host tolerates.
const MaxDeviation = 0.001

// Phase of the host clock.
type Phase int

// List of valid Phase values.
const (
	PhaseBoot Phase = iota
	PhaseNormal
)

func (p Phase) String() string {
	switch p {
	case PhaseBoot:
		return "boot"
	case PhaseNormal:
		return "normal"
	}
	panic("unknown clock phase")
}

// Generator produces the host clock. The hardware divides the system clock
// through a PWM slice; the generator reproduces that arithmetic so the
// achievable frequency, and its error, match what the pins would carry.
//
// The generator is also the adapter's time base. Every host cycle ticked
// through it advances the virtual elapsed time by the true period of the
// generated clock.
type Generator struct {
	crit sync.Mutex

	phase     Phase
	requested uint32
	enabled   bool

	// frequency used by each phase, indexed by Phase. machine profiles can
	// replace the defaults; the values survive a reset like any other
	// flashed configuration
	rates [2]uint32

	// PWM parameters chosen for the requested frequency
	divider float64
	wrap    uint32

	cycles  uint64
	elapsed time.Duration
}

// NewGenerator is the preferred method of initialisation for the Generator
// type. The generator starts in the boot phase.
func NewGenerator() *Generator {
	g := &Generator{
		rates: [2]uint32{FreqBoot, FreqNormal},
	}
	g.Reset()
	return g
}

// Reset returns the generator to the boot phase. The cycle count and
// elapsed time are not zeroed; time does not run backwards.
func (g *Generator) Reset() {
	g.crit.Lock()
	defer g.crit.Unlock()

	g.phase = PhaseBoot
	g.enabled = true
	g.program(g.rates[PhaseBoot])
}

// program chooses PWM parameters for the requested frequency. Must be
// called with the lock held.
func (g *Generator) program(hz uint32) {
	g.requested = hz

	bestErr := math.Inf(1)
	for di := 1; di <= 255; di++ {
		for df := range 16 {
			divider := float64(di) + float64(df)/16.0
			wrap := uint32(SysClk/(divider*float64(hz))) - 1
			if wrap == 0 || wrap > 65535 {
				continue
			}
			actual := SysClk / (divider * float64(wrap+1))
			err := math.Abs(actual-float64(hz)) / float64(hz)
			if err < bestErr {
				bestErr = err
				g.divider = divider
				g.wrap = wrap
			}
		}
	}
}

// SetFrequency programs the generator for an arbitrary frequency. An error
// is returned if no dividable frequency is close enough to the request.
func (g *Generator) SetFrequency(hz uint32) error {
	if hz == 0 {
		return fmt.Errorf("clock: invalid frequency: %d", hz)
	}

	g.crit.Lock()
	defer g.crit.Unlock()

	g.program(hz)
	if g.deviation() > MaxDeviation {
		return fmt.Errorf("clock: frequency %d not achievable within %.1f%%", hz, MaxDeviation*100)
	}
	return nil
}

// SetRates replaces the frequencies used by the two phases. Machine profiles
// use this to slow the bus down; the defaults are FreqBoot and FreqNormal.
// An error is returned if either frequency cannot be generated within the
// tolerated deviation, in which case the previous rates are kept.
func (g *Generator) SetRates(boot uint32, run uint32) error {
	if boot == 0 || run == 0 || boot > run {
		return fmt.Errorf("clock: invalid rates: boot %d, run %d", boot, run)
	}

	g.crit.Lock()
	defer g.crit.Unlock()

	prev := g.requested
	for _, hz := range []uint32{boot, run} {
		g.program(hz)
		if g.deviation() > MaxDeviation {
			g.program(prev)
			return fmt.Errorf("clock: frequency %d not achievable within %.1f%%", hz, MaxDeviation*100)
		}
	}

	g.rates = [2]uint32{boot, run}
	g.program(g.rates[g.phase])

	return nil
}

// SetPhase switches the generator between the boot and normal frequencies.
func (g *Generator) SetPhase(p Phase) {
	g.crit.Lock()
	defer g.crit.Unlock()

	g.phase = p
	g.program(g.rates[p])
}

// Phase returns the current clock phase.
func (g *Generator) Phase() Phase {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.phase
}

// Frequency returns the true generated frequency in Hz, which may differ
// minutely from the requested one.
func (g *Generator) Frequency() float64 {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.frequency()
}

func (g *Generator) frequency() float64 {
	return SysClk / (g.divider * float64(g.wrap+1))
}

// Period returns the duration of one host cycle at the generated frequency.
func (g *Generator) Period() time.Duration {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.period()
}

func (g *Generator) period() time.Duration {
	return time.Duration(float64(time.Second) / g.frequency())
}

// deviation of the generated frequency from the requested one. Must be
// called with the lock held.
func (g *Generator) deviation() float64 {
	return math.Abs(g.frequency()-float64(g.requested)) / float64(g.requested)
}

// Deviation returns the relative error of the generated frequency.
func (g *Generator) Deviation() float64 {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.deviation()
}

// Stable returns true if the generated frequency is within the tolerated
// deviation of the requested one.
func (g *Generator) Stable() bool {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.enabled && g.deviation() <= MaxDeviation
}

// Enable or disable the clock output. A disabled generator does not advance
// time when ticked.
func (g *Generator) Enable(enable bool) {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.enabled = enable
}

// Enabled returns true if the clock output is running.
func (g *Generator) Enabled() bool {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.enabled
}

// Tick advances the time base by n host cycles at the current frequency.
func (g *Generator) Tick(n int) {
	g.crit.Lock()
	defer g.crit.Unlock()

	if !g.enabled {
		return
	}
	g.cycles += uint64(n)
	g.elapsed += time.Duration(n) * g.period()
}

// Cycles returns the number of host cycles ticked since power on.
func (g *Generator) Cycles() uint64 {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.cycles
}

// Elapsed returns the virtual time advanced since power on.
func (g *Generator) Elapsed() time.Duration {
	g.crit.Lock()
	defer g.crit.Unlock()
	return g.elapsed
}

func (g *Generator) String() string {
	g.crit.Lock()
	defer g.crit.Unlock()
	return fmt.Sprintf("%s phase: %.1f Hz (div=%.2f wrap=%d dev=%.4f%%)",
		g.phase, g.frequency(), g.divider, g.wrap, g.deviation()*100)
}
