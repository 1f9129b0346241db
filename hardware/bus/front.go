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

package bus

import (
	"sync/atomic"

	"github.com/softlatch/mia/hardware/dma"
	"github.com/softlatch/mia/hardware/icq"
	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/memory"
	"github.com/softlatch/mia/hardware/pio"
	"github.com/softlatch/mia/hardware/regmap"
	"github.com/softlatch/mia/hardware/status"
)

// The register file appears to the host at Base and is mirrored through
// the decoded block. Only the low eight address lines reach the device;
// the rest are decoded to the chip select off-chip.
const (
	Base = 0xc000
	Size = 0x0400
)

// Decode extracts the local register address from a host address. The
// boolean return value is false if the host address falls outside the
// decoded block.
func Decode(address uint16) (uint8, bool) {
	if address < Base || address >= Base+Size {
		return 0, false
	}
	return uint8(address & 0xff), true
}

// Shared command opcodes, written through the SHARED_COMMAND register.
// Unknown opcodes are no-ops.
const (
	CmdNop          uint8 = 0x00
	CmdResetAllIdx  uint8 = 0x01
	CmdFactoryReset uint8 = 0x02
	CmdClearIRQ     uint8 = 0x03
	CmdCopyBlock    uint8 = 0x04
	CmdSystemReset  uint8 = 0x05
)

// Front is the bus front-end. It services one host bus cycle at a time,
// decoding the local address and moving one byte between the host and the
// rest of the device.
//
// Front implements the pio.Handler interface. The servicing contract is
// the speculative one: the read path runs before the cycle's direction is
// known, and the cursor auto-step it implies is held back until the cycle
// is confirmed as a read. A write cycle discards the speculated byte and
// drives the write path after the host's data has been latched.
type Front struct {
	mem   *memory.Memory
	eng   *dma.Engine
	irqc  *irq.Controller
	sts   *status.Register
	queue *icq.Queue

	windows [regmap.NumWindows]Window

	// wake nudges the worker core after a copy command has been queued.
	// reboot requests a full device restart; the request must be latched by
	// the receiver and acted on outside the bus cycle.
	wake   func()
	reboot func()

	drops atomic.Uint64
}

// NewFront is the preferred method of initialisation for the Front type.
// The wake and reboot functions may be nil.
func NewFront(mem *memory.Memory, eng *dma.Engine, irqc *irq.Controller,
	sts *status.Register, queue *icq.Queue, wake func(), reboot func()) *Front {

	return &Front{
		mem:    mem,
		eng:    eng,
		irqc:   irqc,
		sts:    sts,
		queue:  queue,
		wake:   wake,
		reboot: reboot,
	}
}

// ServiceBus services one host bus cycle from the chip select interrupt.
func (f *Front) ServiceBus(sm *pio.StateMachine) {
	address := sm.PullAddress()

	// the read path runs now, before direction is known. commit carries
	// any side effect that must wait for the cycle to be confirmed as a
	// read
	data, commit := f.speculativeRead(address)

	switch sm.AwaitDirection() {
	case pio.DirNone:
		sm.PushControl(pio.CtrlNop)

	case pio.DirRead:
		sm.PushControl(pio.CtrlRead)
		sm.PushData(data)
		if commit != nil {
			commit()
		}

	case pio.DirWrite:
		sm.PushControl(pio.CtrlWrite)
		f.write(address, sm.AwaitWriteData())
	}
}

// speculativeRead prepares the byte for a possible read cycle. The
// returned function commits the read's deferred side effects and is nil
// when there are none.
func (f *Front) speculativeRead(address uint8) (uint8, func()) {
	t := regmap.Decode(address)

	if t.Shared {
		switch address {
		case regmap.DeviceStatus:
			return f.sts.Value(), nil
		case regmap.IRQCauseLow:
			return f.irqc.CauseLow(), nil
		case regmap.IRQCauseHigh:
			return f.irqc.CauseHigh(), nil
		case regmap.IRQMaskLow:
			return f.irqc.MaskLow(), nil
		case regmap.IRQMaskHigh:
			return f.irqc.MaskHigh(), nil
		case regmap.IRQEnable:
			return f.irqc.Enabled(), nil
		}

		// SHARED_COMMAND is write-only and reserved addresses read as zero
		return 0, nil
	}

	w := &f.windows[t.Window]

	switch t.Offset {
	case regmap.IdxSelect:
		return w.ActiveIndex, nil

	case regmap.DataPort:
		data, ok := f.mem.ReadCursor(w.ActiveIndex)
		if !ok {
			return data, nil
		}
		idx := w.ActiveIndex
		return data, func() { f.mem.StepCursor(idx) }

	case regmap.CfgFieldSelect:
		return w.ConfigField, nil

	case regmap.CfgData:
		return f.mem.Field(w.ActiveIndex, w.ConfigField), nil
	}

	// COMMAND is write-only and reserved offsets read as zero
	return 0, nil
}

// write applies a host write to the addressed register.
func (f *Front) write(address uint8, data uint8) {
	t := regmap.Decode(address)

	if t.Shared {
		switch address {
		case regmap.IRQCauseLow:
			f.irqc.ClearLow(data)
		case regmap.IRQCauseHigh:
			f.irqc.ClearHigh(data)
		case regmap.IRQMaskLow:
			f.irqc.SetMaskLow(data)
		case regmap.IRQMaskHigh:
			f.irqc.SetMaskHigh(data)
		case regmap.IRQEnable:
			f.irqc.SetEnable(data)
		case regmap.SharedCommand:
			f.sharedCommand(data)
		}

		// DEVICE_STATUS is read-only and reserved addresses swallow writes
		return
	}

	w := &f.windows[t.Window]

	switch t.Offset {
	case regmap.IdxSelect:
		w.ActiveIndex = data
	case regmap.DataPort:
		f.mem.Write(w.ActiveIndex, data)
	case regmap.CfgFieldSelect:
		w.ConfigField = data
	case regmap.CfgData:
		f.mem.SetField(w.ActiveIndex, w.ConfigField, data)
	case regmap.Command:
		f.mem.Command(w.ActiveIndex, data)
	}
}

// sharedCommand dispatches an opcode written to the SHARED_COMMAND
// register.
func (f *Front) sharedCommand(opcode uint8) {
	switch opcode {
	case CmdNop:

	case CmdResetAllIdx:
		f.mem.ResetAll()

	case CmdFactoryReset:
		// an in-flight copy must not outlive the state it was dispatched
		// from. the host contract forbids issuing this while DMA is
		// active, so the drain is normally free
		f.eng.Wait()
		f.irqc.Reset()
		f.mem.FactoryReset()

	case CmdClearIRQ:
		f.irqc.ClearAll()

	case CmdCopyBlock:
		if f.queue.TryAdd(f.mem.CopyConfig()) {
			if f.wake != nil {
				f.wake()
			}
		} else {
			f.drops.Add(1)
		}

	case CmdSystemReset:
		if f.reboot != nil {
			f.reboot()
		}
	}
}

// Reset clears the window latches and the drop counter, as a device restart
// would.
func (f *Front) Reset() {
	f.windows = [regmap.NumWindows]Window{}
	f.drops.Store(0)
}

// Window returns a copy of the numbered window's latches.
func (f *Front) Window(w int) Window {
	return f.windows[w&(regmap.NumWindows-1)]
}

// Drops returns how many copy commands have been dropped against a full
// queue.
func (f *Front) Drops() uint64 {
	return f.drops.Load()
}
