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

package rome

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/softlatch/mia/hardware/clock"
	"github.com/softlatch/mia/logger"
)

// The ROM window occupies the top of the host's address space. Addresses are
// decoded to the window size, so the reset vector at $fffc appears at 0x03fc.
const (
	WindowSize   = 0x0400
	ResetVector  = 0x03fc
	KernelStatus = 0x0100
	KernelData   = 0x0101
)

// Host side addresses of the boot protocol. EntryPoint is where the loader
// appears to the host and what the emulated reset vector points to.
// LoadAddress is where the loader streams the kernel.
const (
	EntryPoint  = 0xe000
	LoadAddress = 0x4000
)

// Filler is returned for reads of window addresses with nothing behind them.
// The value is the 6502 NOP opcode.
const Filler = 0xea

// The host reset line must be held for this many cycles, and at least this
// long, before the window is banked in.
const (
	resetHoldCycles = 5
	resetHoldTime   = 50 * time.Microsecond
)

// State of the ROM emulation.
type State int

// List of valid State values.
const (
	StateInactive State = iota
	StateResetSequence
	StateBootActive
	StateKernelLoading
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateResetSequence:
		return "reset sequence"
	case StateBootActive:
		return "boot active"
	case StateKernelLoading:
		return "kernel loading"
	case StateComplete:
		return "complete"
	}
	panic("unknown rom emulation state")
}

// Rome emulates the boot ROM the host expects to find in its high memory.
// It answers the reset vector, feeds the host the loader program and streams
// the kernel image a byte at a time, all at the slow boot clock. Once the
// kernel is across, Rome steps aside and the register file takes over.
type Rome struct {
	crit sync.Mutex

	clk *clock.Generator
	rst *clock.ResetLine

	state  State
	banked bool

	kernel  []uint8
	pointer int

	resetStart  time.Duration
	resetCycles uint64
}

// NewRome is the preferred method of initialisation for the Rome type. The
// kernel image is the byte stream served at the kernel data address.
func NewRome(clk *clock.Generator, rst *clock.ResetLine, kernel []uint8) *Rome {
	return &Rome{
		clk:    clk,
		rst:    rst,
		kernel: slices.Clone(kernel),
	}
}

// SetKernel replaces the kernel image served during the next boot sequence.
// The image cannot be replaced while a boot is in progress.
func (rom *Rome) SetKernel(kernel []uint8) error {
	rom.crit.Lock()
	defer rom.crit.Unlock()

	if rom.state != StateInactive {
		return fmt.Errorf("rome: cannot replace kernel: %s", rom.state)
	}

	rom.kernel = slices.Clone(kernel)
	rom.pointer = 0

	return nil
}

// Reset tears the emulation down to the inactive state. The reset line is
// left as it is.
func (rom *Rome) Reset() {
	rom.crit.Lock()
	defer rom.crit.Unlock()

	rom.state = StateInactive
	rom.banked = false
	rom.pointer = 0
}

// StartBootSequence asserts the host reset line and begins the walk through
// the boot states. A no-op unless the emulation is inactive.
func (rom *Rome) StartBootSequence() {
	rom.crit.Lock()
	defer rom.crit.Unlock()

	if rom.state != StateInactive {
		return
	}

	rom.rst.Assert(rom.clk.Elapsed())
	rom.resetStart = rom.clk.Elapsed()
	rom.resetCycles = rom.clk.Cycles()
	rom.pointer = 0
	rom.state = StateResetSequence

	rom.clk.SetPhase(clock.PhaseBoot)

	logger.Log(logger.Allow, "rome", "boot sequence started, reset asserted")
}

// Process advances the state machine. Called between bus cycles.
//
// In the reset sequence state the reset line is released, and the window
// banked in, once the hold requirement is met. In the complete state the
// clock is switched to the normal phase and the window banked out.
func (rom *Rome) Process() {
	rom.crit.Lock()
	defer rom.crit.Unlock()

	switch rom.state {
	case StateResetSequence:
		elapsed := rom.clk.Elapsed() - rom.resetStart
		cycles := rom.clk.Cycles() - rom.resetCycles
		if cycles >= resetHoldCycles && elapsed >= resetHoldTime {
			rom.banked = true
			rom.rst.Release()
			rom.state = StateBootActive
			logger.Logf(logger.Allow, "rome", "reset released after %s (%d cycles), ROM window banked in", elapsed, cycles)
		}

	case StateComplete:
		rom.clk.SetPhase(clock.PhaseNormal)
		rom.banked = false
		rom.state = StateInactive
		logger.Log(logger.Allow, "rome", "kernel loaded, ROM window banked out, clock at normal phase")
	}
}

// Read services a host read of the ROM window. The address is decoded to the
// window size. The boolean return value is false if the window is not being
// served in the current state.
//
// Reads of the kernel status address return 1 while kernel bytes remain and
// 0 once the stream is exhausted. Reads of the kernel data address return
// successive bytes of the kernel image.
func (rom *Rome) Read(address uint16) (uint8, bool) {
	rom.crit.Lock()
	defer rom.crit.Unlock()

	if rom.state != StateBootActive && rom.state != StateKernelLoading && rom.state != StateComplete {
		return 0, false
	}

	address &= WindowSize - 1

	switch {
	case address == ResetVector:
		return uint8(EntryPoint & 0xff), true

	case address == ResetVector+1:
		return uint8(EntryPoint >> 8), true

	case address < KernelStatus:
		// loader program. the host fetches these bytes as instructions
		if int(address) < len(Loader) {
			return Loader[address], true
		}
		return Filler, true

	case address == KernelStatus:
		if rom.state == StateBootActive {
			rom.state = StateKernelLoading
			logger.Logf(logger.Allow, "rome", "kernel loading started (%d bytes)", len(rom.kernel))
		}
		if rom.pointer < len(rom.kernel) {
			return 0x01, true
		}

		// the host must observe the zero before the window is torn down,
		// so completion latches on the status read and not on the final
		// data byte
		if rom.state == StateKernelLoading {
			rom.state = StateComplete
			logger.Logf(logger.Allow, "rome", "kernel transfer complete (%d bytes)", rom.pointer)
		}
		return 0x00, true

	case address == KernelData:
		if rom.pointer < len(rom.kernel) {
			d := rom.kernel[rom.pointer]
			rom.pointer++
			return d, true
		}
		return 0x00, true
	}

	return Filler, true
}

// Write services a host write of the ROM window. The window is read-only so
// the data is discarded and the return value is always false.
func (rom *Rome) Write(_ uint16, _ uint8) bool {
	return false
}

// State returns the current boot state.
func (rom *Rome) State() State {
	rom.crit.Lock()
	defer rom.crit.Unlock()
	return rom.state
}

// Active returns true unless the emulation is in the inactive state.
func (rom *Rome) Active() bool {
	rom.crit.Lock()
	defer rom.crit.Unlock()
	return rom.state != StateInactive
}

// Banked returns true while the ROM window is mapped into the host's high
// memory.
func (rom *Rome) Banked() bool {
	rom.crit.Lock()
	defer rom.crit.Unlock()
	return rom.banked
}

// KernelSize returns the length of the kernel image in bytes.
func (rom *Rome) KernelSize() int {
	rom.crit.Lock()
	defer rom.crit.Unlock()
	return len(rom.kernel)
}

// BytesTransferred returns how many kernel bytes the host has read so far.
func (rom *Rome) BytesTransferred() int {
	rom.crit.Lock()
	defer rom.crit.Unlock()
	return rom.pointer
}

func (rom *Rome) String() string {
	rom.crit.Lock()
	defer rom.crit.Unlock()
	return fmt.Sprintf("%s: %d/%d bytes", rom.state, rom.pointer, len(rom.kernel))
}
