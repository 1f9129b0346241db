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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/softlatch/mia/environment"
	"github.com/softlatch/mia/hardware"
	"github.com/softlatch/mia/hardware/clock"
	"github.com/softlatch/mia/hardware/host"
	"github.com/softlatch/mia/hardware/memory"
	"github.com/softlatch/mia/hardware/regmap"
	"github.com/softlatch/mia/kernelimage"
	"github.com/softlatch/mia/performance/limiter"
)

// Check the performance of the emulated adapter.
//
// The kernel image, if there is one, is attached and booted, and the host
// then drives alternating write and read cycles for the specified duration.
// The achieved host clock rate is compared against the reference rate and
// the result written to output. A cpu profile, memory profile, a trace (or a
// combination of those) is created as defined by the Profile argument.
//
// When capped is true the bus is paced to the reference host clock rather
// than driven flat out. A capped run should report a rate very close to 100%
// on any reasonable hardware.
func Check(output io.Writer, profile Profile, ldr kernelimage.Loader, capped bool, duration string) error {
	mia, err := hardware.NewMIA(environment.MainEmulation, nil)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	mia.Start()
	defer mia.End()

	drv := host.NewDriver(mia)

	// attach and boot the kernel image. the measurement should reflect a
	// machine in its normal running phase, not the boot phase
	if ldr.Filename != "" || ldr.HasLoaded() {
		if err := ldr.Load(); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		if err := mia.AttachKernel(ldr); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		mia.StartBootSequence()
		if err := drv.Boot(); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
	}

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	// pacing for the capped mode. every wait buys one chunk's worth of bus
	// cycles
	var pace *limiter.RateLimiter
	if capped {
		pace, err = limiter.NewRateLimiter(clock.FreqNormal / hardware.CycleChunk)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
	}

	// point window 0 at a wrapping cursor. the error log cursor it starts on
	// appends without wrapping and a sustained write burst would walk it off
	// the end of the arena
	drv.WriteRegister(regmap.IdxSelect, memory.IdxCharacterStart)

	// get starting cycle count. reset again when the leadtime has elapsed
	startCycles := mia.Clk.Cycles()
	lastCycles := startCycles

	// drive the bus for the specified period of time
	runner := func() error {
		// setup trigger that expires when duration has elapsed. signals
		// false to indicate that measurement should start and true when the
		// duration has expired
		timerChan := make(chan bool)

		// force a two second leadtime so that the measurement is of the
		// steady state and not of the boot hangover, then restart the timer
		// for the specified duration
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		// live rate meter
		tick := time.NewTicker(time.Second)
		defer tick.Stop()

		// only check the channels every PerformanceBrake chunks. checking
		// them is relatively expensive
		performanceBrake := 0

		for {
			// one chunk of bus traffic. a write through the data port and a
			// status poll is the shape of a busy host program
			for i := 0; i < hardware.CycleChunk/2; i++ {
				drv.WriteRegister(regmap.DataPort, uint8(i))
				drv.ReadRegister(regmap.DeviceStatus)
			}

			if pace != nil {
				pace.Wait()
			}

			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0

				select {
				case v := <-timerChan:
					if v {
						// the measurement period has finished
						return nil
					}

					// the leadtime has concluded and measurement has begun.
					// record the starting cycle count
					startCycles = mia.Clk.Cycles()

				case <-tick.C:
					// carriage return and no newline so that the next line
					// of the meter overwrites this one
					cur := mia.Clk.Cycles()
					_, comparison := CalcRate(cur-lastCycles, 1.0)
					lastCycles = cur
					output.Write([]byte(fmt.Sprintf("\r%.1f%%", comparison)))

				default:
				}
			}
		}
	}

	// launch runner directly or through the profiler, depending on supplied
	// arguments
	if err := RunProfiler(profile, "performance", runner); err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	// calculate performance
	numCycles := mia.Clk.Cycles() - startCycles
	rate, comparison := CalcRate(numCycles, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("\r%.3f MHz (%d cycles in %.2f seconds) %.1f%%\n",
		rate/1e6, numCycles, dur.Seconds(), comparison)))

	return nil
}
