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

package hardware_test

import (
	"testing"

	"github.com/softlatch/mia/hardware"
	"github.com/softlatch/mia/hardware/bus"
	"github.com/softlatch/mia/hardware/host"
	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/memory"
	"github.com/softlatch/mia/hardware/memory/cursor"
	"github.com/softlatch/mia/hardware/regmap"
	"github.com/softlatch/mia/hardware/status"
	"github.com/softlatch/mia/test"
)

func newMachine(t *testing.T) (*hardware.MIA, *host.Driver) {
	t.Helper()

	mia, err := hardware.NewMIA("test", nil)
	test.DemandSuccess(t, err)
	mia.Env.Normalise()

	return mia, host.NewDriver(mia)
}

// wreg returns the local address of a window register.
func wreg(w int, offset uint8) uint8 {
	return uint8(w)*regmap.WindowSpan + offset
}

// setField selects a config field through a window and writes one byte to it.
func setField(drv *host.Driver, w int, fld uint8, data uint8) {
	drv.WriteRegister(wreg(w, regmap.CfgFieldSelect), fld)
	drv.WriteRegister(wreg(w, regmap.CfgData), data)
}

// setTriple writes a 24-bit config value a byte at a time. fld names the low
// byte of the Current, Default or Limit triple.
func setTriple(drv *host.Driver, w int, fld uint8, v uint32) {
	setField(drv, w, fld, uint8(v))
	setField(drv, w, fld+1, uint8(v>>8))
	setField(drv, w, fld+2, uint8(v>>16))
}

func TestPowerOnState(t *testing.T) {
	mia, drv := newMachine(t)

	test.ExpectEquality(t, drv.ReadRegister(regmap.DeviceStatus), uint8(status.Ready))
	test.ExpectEquality(t, drv.ReadRegister(regmap.IRQCauseLow), 0)
	test.ExpectEquality(t, drv.ReadRegister(regmap.IRQCauseHigh), 0)
	test.ExpectEquality(t, drv.ReadRegister(regmap.IRQMaskLow), 0xff)
	test.ExpectEquality(t, drv.ReadRegister(regmap.IRQMaskHigh), 0xff)
	test.ExpectEquality(t, drv.ReadRegister(regmap.IRQEnable), 1)

	test.ExpectEquality(t, mia.ResetAsserted(), false)
	test.ExpectEquality(t, mia.IRQAsserted(), false)
	test.ExpectEquality(t, mia.Rome.Active(), false)

	// user cursors sit at the base of the user area
	test.ExpectEquality(t, mia.Mem.Cursor(128).Current, uint32(memory.OriginUser))
	test.ExpectEquality(t, mia.Mem.Cursor(255).Current, uint32(memory.OriginUser))
}

func TestDataPortRoundTrip(t *testing.T) {
	mia, drv := newMachine(t)

	drv.WriteRegister(wreg(0, regmap.IdxSelect), 128)
	test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.IdxSelect)), 128)

	drv.WriteRegister(wreg(0, regmap.DataPort), 0xab)
	drv.WriteRegister(wreg(0, regmap.DataPort), 0xbb)
	drv.WriteRegister(wreg(0, regmap.DataPort), 0xcc)
	test.ExpectEquality(t, mia.Mem.Cursor(128).Current, uint32(memory.OriginUser+3))

	drv.WriteRegister(wreg(0, regmap.Command), memory.CmdResetIndex)
	test.ExpectEquality(t, mia.Mem.Cursor(128).Current, uint32(memory.OriginUser))

	test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.DataPort)), 0xab)
	test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.DataPort)), 0xbb)
	test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.DataPort)), 0xcc)
	test.ExpectEquality(t, mia.Mem.Cursor(128).Current, uint32(memory.OriginUser+3))
}

func TestWrapOnLimit(t *testing.T) {
	mia, drv := newMachine(t)

	// cursor 128 as a 16 byte circular buffer over the base of the user area
	drv.WriteRegister(wreg(0, regmap.IdxSelect), 128)
	setTriple(drv, 0, cursor.FldLimitLow, memory.OriginUser+16)
	setField(drv, 0, cursor.FldFlags, cursor.AutoStep|cursor.WrapOnLimit)

	// twenty writes into a sixteen byte buffer. the last four overwrite the
	// start
	for i := range 20 {
		drv.WriteRegister(wreg(0, regmap.DataPort), uint8(i))
	}

	drv.WriteRegister(wreg(0, regmap.Command), memory.CmdResetIndex)

	expected := []uint8{
		0x10, 0x11, 0x12, 0x13,
		0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	}
	for i, d := range expected {
		test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.DataPort)), d, i)
	}

	// the sixteenth read wrapped the cursor back to its default
	test.ExpectEquality(t, mia.Mem.Cursor(128).Current, uint32(memory.OriginUser))
}

func TestWindowOrthogonality(t *testing.T) {
	mia, drv := newMachine(t)

	// two windows working two different cursors in different parts of the
	// arena
	drv.WriteRegister(wreg(0, regmap.IdxSelect), 128)
	setTriple(drv, 0, cursor.FldCurrentLow, 0x020000)

	drv.WriteRegister(wreg(5, regmap.IdxSelect), 200)
	setTriple(drv, 5, cursor.FldCurrentLow, 0x021000)

	drv.WriteRegister(wreg(0, regmap.DataPort), 0xaa)
	drv.WriteRegister(wreg(5, regmap.DataPort), 0xbb)
	drv.WriteRegister(wreg(0, regmap.DataPort), 0xac)
	drv.WriteRegister(wreg(5, regmap.DataPort), 0xbc)

	test.ExpectEquality(t, mia.Arena.Mem[0x020000], 0xaa)
	test.ExpectEquality(t, mia.Arena.Mem[0x020001], 0xac)
	test.ExpectEquality(t, mia.Arena.Mem[0x021000], 0xbb)
	test.ExpectEquality(t, mia.Arena.Mem[0x021001], 0xbc)

	// the latches of one window are untouched by traffic through another
	drv.WriteRegister(wreg(0, regmap.CfgFieldSelect), cursor.FldCurrentLow)
	drv.WriteRegister(wreg(5, regmap.CfgFieldSelect), cursor.FldFlags)

	test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.IdxSelect)), 128)
	test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.CfgFieldSelect)), uint8(cursor.FldCurrentLow))
	test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.CfgData)), 0x02)

	test.ExpectEquality(t, drv.ReadRegister(wreg(5, regmap.IdxSelect)), 200)
	test.ExpectEquality(t, drv.ReadRegister(wreg(5, regmap.CfgFieldSelect)), uint8(cursor.FldFlags))
	test.ExpectEquality(t, drv.ReadRegister(wreg(5, regmap.CfgData)), uint8(cursor.AutoStep))
}

func TestCopyBlock(t *testing.T) {
	mia, drv := newMachine(t)

	mia.Start()
	defer mia.End()

	// source cursor with ten bytes behind it
	drv.WriteRegister(wreg(0, regmap.IdxSelect), 128)
	setTriple(drv, 0, cursor.FldCurrentLow, 0x013a00)
	setTriple(drv, 0, cursor.FldDefaultLow, 0x013a00)
	for i := range 10 {
		drv.WriteRegister(wreg(0, regmap.DataPort), uint8(0x10+i))
	}
	drv.WriteRegister(wreg(0, regmap.Command), memory.CmdResetIndex)

	// target cursor through a different window
	drv.WriteRegister(wreg(1, regmap.IdxSelect), 129)
	setTriple(drv, 1, cursor.FldCurrentLow, 0x013b00)

	setField(drv, 0, cursor.FldDMASource, 128)
	setField(drv, 0, cursor.FldDMATarget, 129)
	setField(drv, 0, cursor.FldDMACountLow, 10)
	setField(drv, 0, cursor.FldDMACountHigh, 0)

	drv.WriteRegister(regmap.SharedCommand, bus.CmdCopyBlock)

	// the copy crosses to the worker core and the DMA engine. poll the
	// cause register; the completion cause latches regardless of masking
	complete := false
	for range 1000000 {
		if drv.ReadRegister(regmap.IRQCauseLow)&uint8(irq.DMAComplete) != 0 {
			complete = true
			break
		}
	}
	test.DemandSuccess(t, complete)

	// the engine copies between addresses; the cursors do not move
	test.ExpectEquality(t, mia.Mem.Cursor(128).Current, uint32(0x013a00))
	test.ExpectEquality(t, mia.Mem.Cursor(129).Current, uint32(0x013b00))

	for i := range 10 {
		test.ExpectEquality(t, mia.Arena.Mem[0x013b00+i], uint8(0x10+i), i)
		test.ExpectEquality(t, mia.Arena.Mem[0x013a00+i], uint8(0x10+i), i)
	}

	sts := drv.ReadRegister(regmap.DeviceStatus)
	test.ExpectEquality(t, sts&status.DMAActive, 0)
	test.ExpectEquality(t, sts&status.IRQPending, status.IRQPending)
	test.ExpectSuccess(t, drv.IRQAsserted())

	// writing one to the completion bit clears the cause and the line
	drv.WriteRegister(regmap.IRQCauseLow, uint8(irq.DMAComplete))
	test.ExpectEquality(t, drv.ReadRegister(regmap.IRQCauseLow), 0)
	test.ExpectEquality(t, drv.IRQAsserted(), false)
}

func TestIRQMaskGating(t *testing.T) {
	mia, drv := newMachine(t)

	drv.WriteRegister(regmap.SharedCommand, bus.CmdClearIRQ)

	// mask out the DMA completion cause, then raise it
	drv.WriteRegister(regmap.IRQMaskLow, 0xff&^uint8(irq.DMAComplete))
	mia.IRQ.Raise(irq.DMAComplete)

	// the cause is latched but not forwarded
	test.ExpectEquality(t, drv.ReadRegister(regmap.IRQCauseLow), uint8(irq.DMAComplete))
	test.ExpectEquality(t, drv.ReadRegister(regmap.DeviceStatus)&status.IRQPending, 0)
	test.ExpectEquality(t, drv.IRQAsserted(), false)

	// unmasking forwards the pending cause
	drv.WriteRegister(regmap.IRQMaskLow, 0xff)
	test.ExpectEquality(t, drv.ReadRegister(regmap.DeviceStatus)&status.IRQPending, status.IRQPending)
	test.ExpectSuccess(t, drv.IRQAsserted())
}

func TestAccessFault(t *testing.T) {
	mia, drv := newMachine(t)

	// point cursor 133 outside the arena
	drv.WriteRegister(wreg(3, regmap.IdxSelect), 133)
	setTriple(drv, 3, cursor.FldCurrentLow, 0x080000)

	test.ExpectEquality(t, drv.ReadRegister(wreg(3, regmap.DataPort)), 0)

	sts := drv.ReadRegister(regmap.DeviceStatus)
	test.ExpectEquality(t, sts&status.MemoryError, status.MemoryError)
	test.ExpectEquality(t, sts&status.IndexOverflow, status.IndexOverflow)
	test.ExpectEquality(t, sts&status.IRQPending, status.IRQPending)

	cause := drv.ReadRegister(regmap.IRQCauseLow)
	test.ExpectEquality(t, cause&uint8(irq.MemoryError), uint8(irq.MemoryError))
	test.ExpectEquality(t, cause&uint8(irq.IndexOverflow), uint8(irq.IndexOverflow))
	test.ExpectSuccess(t, drv.IRQAsserted())

	// a faulting access does not move the cursor
	test.ExpectEquality(t, mia.Mem.Cursor(133).Current, uint32(0x080000))

	// a factory reset clears the error condition wholesale
	drv.WriteRegister(regmap.SharedCommand, bus.CmdFactoryReset)
	test.ExpectEquality(t, drv.ReadRegister(regmap.DeviceStatus), uint8(status.Ready))
	test.ExpectEquality(t, drv.ReadRegister(regmap.IRQCauseLow), 0)
	test.ExpectEquality(t, drv.IRQAsserted(), false)
	test.ExpectEquality(t, mia.Mem.Cursor(133).Current, uint32(memory.OriginUser))
}

func TestResetAllIndexes(t *testing.T) {
	mia, drv := newMachine(t)

	drv.WriteRegister(wreg(0, regmap.IdxSelect), 128)
	drv.WriteRegister(wreg(0, regmap.DataPort), 0x01)
	drv.WriteRegister(wreg(1, regmap.IdxSelect), 129)
	drv.WriteRegister(wreg(1, regmap.DataPort), 0x02)

	test.ExpectEquality(t, mia.Mem.Cursor(128).Current, uint32(memory.OriginUser+1))
	test.ExpectEquality(t, mia.Mem.Cursor(129).Current, uint32(memory.OriginUser+1))

	drv.WriteRegister(regmap.SharedCommand, bus.CmdResetAllIdx)

	test.ExpectEquality(t, mia.Mem.Cursor(128).Current, uint32(memory.OriginUser))
	test.ExpectEquality(t, mia.Mem.Cursor(129).Current, uint32(memory.OriginUser))

	// configuration survives a reset-all; the arena does too
	test.ExpectEquality(t, mia.Arena.Mem[memory.OriginUser], 0x02)
}

func TestBusDeadlines(t *testing.T) {
	mia, drv := newMachine(t)

	// a cursor with auto-step off reads back the byte just written
	drv.WriteRegister(wreg(0, regmap.IdxSelect), 128)
	setField(drv, 0, cursor.FldFlags, 0)

	before := mia.SM.Stats()

	for i := range 500 {
		drv.WriteRegister(wreg(0, regmap.DataPort), uint8(i))
		test.ExpectEquality(t, drv.ReadRegister(wreg(0, regmap.DataPort)), uint8(i))
	}

	after := mia.SM.Stats()
	test.ExpectEquality(t, after.Cycles-before.Cycles, 1000)
	test.ExpectEquality(t, after.Reads-before.Reads, 500)
	test.ExpectEquality(t, after.Writes-before.Writes, 500)

	// every cycle made its deadline
	test.ExpectEquality(t, after.Misses, before.Misses)
	test.ExpectEquality(t, after.Stalls, before.Stalls)
}
