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

package hardware

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/softlatch/mia/environment"
	"github.com/softlatch/mia/hardware/bus"
	"github.com/softlatch/mia/hardware/clock"
	"github.com/softlatch/mia/hardware/dma"
	"github.com/softlatch/mia/hardware/icq"
	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/memory"
	"github.com/softlatch/mia/hardware/memory/arena"
	"github.com/softlatch/mia/hardware/pio"
	"github.com/softlatch/mia/hardware/preferences"
	"github.com/softlatch/mia/hardware/rome"
	"github.com/softlatch/mia/hardware/status"
	"github.com/softlatch/mia/kernelimage"
	"github.com/softlatch/mia/logger"
)

// MIA is the main container for the emulated components of the adapter.
type MIA struct {
	Env *environment.Environment

	Clk    *clock.Generator
	Rst    *clock.ResetLine
	Status *status.Register
	Pin    *bus.IRQPin
	IRQ    *irq.Controller
	Arena  *arena.Arena
	Mem    *memory.Memory
	DMA    *dma.Engine
	ICQ    *icq.Queue
	Rome   *rome.Rome
	Front  *bus.Front
	SM     *pio.StateMachine

	// crit serialises the host side entry points. there is only ever one bus
	// master at a time, electrically, so contention here is between the host
	// driver, the monitor and the register bridge
	crit sync.Mutex

	// reboot is latched by the SYSTEM_RESET shared command and actioned once
	// the bus cycle that carried the command has been serviced. guarded by
	// crit: the latching callback runs inside a bus cycle
	reboot bool

	// service loop state. see service.go
	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
	running bool
}

// NewMIA creates a new adapter and everything associated with the hardware.
// It is used for all aspects of emulation: validation runs, monitor sessions
// and regular operation.
//
// The prefs argument can be nil, in which case a new Preferences instance is
// created. No kernel image is attached; use AttachKernel() before starting a
// boot sequence.
func NewMIA(label environment.Label, prefs *preferences.Preferences) (*MIA, error) {
	mia := &MIA{
		Clk: clock.NewGenerator(),
		Rst: &clock.ResetLine{},
	}

	var err error
	mia.Env, err = environment.NewEnvironment(label, mia.Clk, prefs)
	if err != nil {
		return nil, fmt.Errorf("mia: %w", err)
	}

	mia.Status = &status.Register{}
	mia.Pin = &bus.IRQPin{}
	mia.IRQ = irq.NewController(mia.Status, mia.Pin)
	mia.Arena = arena.NewArena()
	mia.Mem = memory.NewMemory(mia.Arena, mia.Status, mia.IRQ)
	mia.DMA = dma.NewEngine(mia.Arena, mia.Status, mia.IRQ)
	mia.ICQ = icq.NewQueue()
	mia.Rome = rome.NewRome(mia.Clk, mia.Rst, nil)
	mia.SM = pio.NewStateMachine()

	mia.wake = make(chan struct{}, 1)
	mia.Front = bus.NewFront(mia.Mem, mia.DMA, mia.IRQ, mia.Status, mia.ICQ,
		mia.wakeService, mia.requestReboot)

	// apply hardware preferences
	if pace := mia.Env.Prefs.DMAPace.Get().(int); pace > 0 {
		mia.DMA.SetPace(time.Duration(pace) * time.Nanosecond)
	}

	mia.reset()

	return mia, nil
}

// AttachKernel attaches a kernel image to the boot ROM emulation and resets
// the adapter. An empty loader detaches any previous image.
func (mia *MIA) AttachKernel(ldr kernelimage.Loader) error {
	mia.crit.Lock()
	defer mia.crit.Unlock()

	// tear down any boot in progress so that the image can be replaced
	mia.Rome.Reset()

	if err := mia.Rome.SetKernel(ldr.Data); err != nil {
		return fmt.Errorf("mia: %w", err)
	}

	mia.reset()

	if ldr.Filename != "" {
		logger.Logf(mia.Env, "mia", "kernel attached: %s (%d bytes)", ldr.Filename, len(ldr.Data))
	}

	return nil
}

// Reset the adapter to its power-on state. Equivalent to removing and
// restoring power on the real device. The attached kernel image survives.
func (mia *MIA) Reset() {
	mia.crit.Lock()
	defer mia.crit.Unlock()
	mia.reset()
}

// the power-on sequence. must be called with crit held (or before the
// machine is visible to any other goroutine).
func (mia *MIA) reset() {
	// the copy service must not dispatch work across the reset, and an
	// in-flight copy must not write into the state being rebuilt
	wasRunning := mia.running
	mia.endService()
	mia.DMA.Wait()
	for {
		if _, ok := mia.ICQ.TryRemove(); !ok {
			break
		}
	}

	mia.Clk.Reset()
	mia.Rst.Release()
	mia.Rome.Reset()
	mia.Mem.FactoryReset()
	mia.IRQ.Reset()
	mia.Front.Reset()

	// the firmware's init pass leaves the arena zeroed. the random state
	// preference models uninitialised DRAM instead
	if mia.Env.Prefs.RandomState.Get().(bool) {
		for i := range mia.Arena.Mem {
			mia.Arena.Mem[i] = uint8(mia.Env.Random.Unclocked(0x100))
		}
		logger.Log(mia.Env, "mia", "arena randomised at power-on")
	}

	if wasRunning {
		mia.startService()
	}
}

// StartBootSequence asserts the host reset line and begins the boot
// sequence. The host sees the reset vector and the kernel loader once the
// reset hold time has passed.
func (mia *MIA) StartBootSequence() {
	mia.crit.Lock()
	defer mia.crit.Unlock()
	mia.Rome.StartBootSequence()
}

func (mia *MIA) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s / %s", mia.Clk.String(), mia.Status.String()))
	if mia.Rome.Active() {
		s.WriteString(fmt.Sprintf(" / boot: %s", mia.Rome.String()))
	}
	return s.String()
}
