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

package pio

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Points in the bus cycle, measured from the chip select assertion edge.
// The address lines are valid at the edge itself. Direction is not known
// until the host clock has risen and the OE and WE lines have settled,
// which is why the servicing core reads speculatively.
const (
	TAddressPush    = 60 * time.Nanosecond
	TServiceBegin   = 200 * time.Nanosecond
	TClockRise      = 500 * time.Nanosecond
	TDirectionValid = 530 * time.Nanosecond
	TDataDrive      = 560 * time.Nanosecond
	TDeadline       = 985 * time.Nanosecond
	TWriteLatch     = 1000 * time.Nanosecond
)

// OpenBus is the byte the host reads when nothing drives the data lines.
const OpenBus = 0xff

// Control tokens pushed by the servicing core once direction is resolved.
type Control int

// List of valid Control values.
const (
	CtrlNop Control = iota
	CtrlRead
	CtrlWrite
)

func (c Control) String() string {
	switch c {
	case CtrlNop:
		return "nop"
	case CtrlRead:
		return "read"
	case CtrlWrite:
		return "write"
	}
	panic("unknown control token")
}

// Direction of a bus cycle, decoded from the OE and WE lines.
type Direction int

// List of valid Direction values. DirNone covers cycles where chip select
// is active but output is not enabled; the data lines are left alone.
const (
	DirNone Direction = iota
	DirRead
	DirWrite
)

// Cycle is one host bus cycle as latched at the chip select edge. OE and WE
// are recorded in their active sense. Data carries the host-driven byte and
// is only meaningful for write cycles.
type Cycle struct {
	Address uint8
	OE      bool
	WE      bool
	Data    uint8
}

// Handler services a latched bus cycle. Implementations must pull the
// address, resolve the direction and push a control token before returning.
// For read cycles a data byte follows the control token; for write cycles
// the handler waits on the host data and applies it.
type Handler interface {
	ServiceBus(sm *StateMachine)
}

// Stats counts serviced bus cycles by outcome. Stalls are cycles the
// handler never resolved with a control token. Misses are read cycles where
// the data byte was not on the bus by the host's latch point.
type Stats struct {
	Cycles uint64
	Reads  uint64
	Writes uint64
	Nops   uint64
	Stalls uint64
	Misses uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("cycles=%d reads=%d writes=%d nops=%d stalls=%d misses=%d",
		s.Cycles, s.Reads, s.Writes, s.Nops, s.Stalls, s.Misses)
}

// StateMachine arbitrates one bus cycle at a time between the host pins and
// the servicing core. It stands in for the hardware program that samples
// the pins and blocks on its FIFOs; here the handshake runs in virtual
// time, with each operation advancing the cycle to the earliest point the
// pins allow it.
//
// All effects of a cycle are complete when Run returns. The next cycle
// observes them in full.
type StateMachine struct {
	cycle Cycle
	now   time.Duration

	direction     Direction
	directionRead bool

	control       Control
	controlPushed bool

	driven     uint8
	dataPushed bool

	cycles atomic.Uint64
	reads  atomic.Uint64
	writes atomic.Uint64
	nops   atomic.Uint64
	stalls atomic.Uint64
	misses atomic.Uint64
}

// NewStateMachine is the preferred method of initialisation for the
// StateMachine type.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Run latches a cycle and walks it to completion, calling the handler at
// the point servicing begins. The returned byte is what the host sees on
// the data lines at its latch point; OpenBus for anything but a serviced
// read.
func (sm *StateMachine) Run(cycle Cycle, handler Handler) uint8 {
	sm.cycle = cycle
	sm.now = TServiceBegin
	sm.directionRead = false
	sm.control = CtrlNop
	sm.controlPushed = false
	sm.driven = OpenBus
	sm.dataPushed = false

	handler.ServiceBus(sm)

	sm.cycles.Add(1)

	if !sm.controlPushed {
		sm.stalls.Add(1)
		return OpenBus
	}

	switch sm.control {
	case CtrlRead:
		if !sm.dataPushed || sm.now > TDeadline {
			sm.misses.Add(1)
			return OpenBus
		}
		sm.reads.Add(1)
		return sm.driven

	case CtrlWrite:
		sm.writes.Add(1)
		return OpenBus
	}

	sm.nops.Add(1)
	return OpenBus
}

// PullAddress returns the address latched at the chip select edge.
func (sm *StateMachine) PullAddress() uint8 {
	if sm.now < TAddressPush {
		sm.now = TAddressPush
	}
	return sm.cycle.Address
}

// AwaitDirection waits for the host clock to rise and the direction lines
// to settle. Everything the handler does before calling this is, by
// construction, speculative.
func (sm *StateMachine) AwaitDirection() Direction {
	if sm.now < TDirectionValid {
		sm.now = TDirectionValid
	}
	sm.directionRead = true

	switch {
	case !sm.cycle.OE:
		sm.direction = DirNone
	case !sm.cycle.WE:
		sm.direction = DirRead
	default:
		sm.direction = DirWrite
	}
	return sm.direction
}

// PushControl resolves the cycle with a control token. Must follow
// AwaitDirection.
func (sm *StateMachine) PushControl(ctrl Control) {
	if !sm.directionRead {
		panic("pio: control pushed before direction resolved")
	}
	sm.control = ctrl
	sm.controlPushed = true
	sm.now += 10 * time.Nanosecond
}

// PushData supplies the byte to drive onto the data lines for a read cycle.
// Must follow a CtrlRead control token.
func (sm *StateMachine) PushData(data uint8) {
	if sm.control != CtrlRead || !sm.controlPushed {
		panic("pio: data pushed without read control")
	}
	sm.driven = data
	sm.dataPushed = true
	if sm.now < TDataDrive {
		sm.now = TDataDrive
	}
}

// AwaitWriteData waits for the host data lines to be stable and latches
// the byte. Must follow a CtrlWrite control token.
func (sm *StateMachine) AwaitWriteData() uint8 {
	if sm.control != CtrlWrite || !sm.controlPushed {
		panic("pio: write data awaited without write control")
	}
	if sm.now < TWriteLatch {
		sm.now = TWriteLatch
	}
	return sm.cycle.Data
}

// Stats returns the cycle counters. Safe to call from outside the bus
// servicing context.
func (sm *StateMachine) Stats() Stats {
	return Stats{
		Cycles: sm.cycles.Load(),
		Reads:  sm.reads.Load(),
		Writes: sm.writes.Load(),
		Nops:   sm.nops.Load(),
		Stalls: sm.stalls.Load(),
		Misses: sm.misses.Load(),
	}
}
