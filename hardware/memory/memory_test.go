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

package memory_test

import (
	"testing"

	"github.com/softlatch/mia/hardware/icq"
	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/memory"
	"github.com/softlatch/mia/hardware/memory/arena"
	"github.com/softlatch/mia/hardware/memory/cursor"
	"github.com/softlatch/mia/hardware/status"
	"github.com/softlatch/mia/test"
)

func newMemory() (*memory.Memory, *status.Register, *irq.Controller) {
	var sts status.Register
	irqc := irq.NewController(&sts, nil)
	mem := memory.NewMemory(arena.NewArena(), &sts, irqc)
	return mem, &sts, irqc
}

func TestFactoryDefaults(t *testing.T) {
	mem, sts, _ := newMemory()

	test.ExpectEquality(t, sts.Test(status.Ready), true)

	// error log
	c := mem.Cursor(memory.IdxErrorLog)
	test.ExpectEquality(t, c.Current, 0x000800)
	test.ExpectEquality(t, c.Default, 0x000800)
	test.ExpectEquality(t, c.Step, 1)
	test.ExpectEquality(t, c.Flags, cursor.AutoStep)

	// character tables
	c = mem.Cursor(memory.IdxCharacterStart)
	test.ExpectEquality(t, c.Current, 0x004800)
	test.ExpectEquality(t, c.Limit, 0x006000)
	test.ExpectEquality(t, c.Flags, cursor.AutoStep|cursor.WrapOnLimit)
	c = mem.Cursor(memory.IdxCharacterStart + 7)
	test.ExpectEquality(t, c.Current, 0x00f000)
	test.ExpectEquality(t, c.Limit, 0x010800)

	// palette banks
	c = mem.Cursor(memory.IdxPaletteStart)
	test.ExpectEquality(t, c.Current, 0x016800)
	test.ExpectEquality(t, c.Limit, 0x016810)
	c = mem.Cursor(memory.IdxPaletteStart + 15)
	test.ExpectEquality(t, c.Current, 0x0168f0)

	// nametables and palette tables
	c = mem.Cursor(memory.IdxNametableStart)
	test.ExpectEquality(t, c.Current, 0x016900)
	test.ExpectEquality(t, c.Limit, 0x016900+1000)
	c = mem.Cursor(memory.IdxPaletteTableStart)
	test.ExpectEquality(t, c.Current, 0x0178a0)

	// sprite OAM steps in records of four
	c = mem.Cursor(memory.IdxSpriteOAM)
	test.ExpectEquality(t, c.Current, 0x018840)
	test.ExpectEquality(t, c.Limit, 0x018840+1024)
	test.ExpectEquality(t, c.Step, 4)

	// frame selector does not step
	c = mem.Cursor(memory.IdxActiveFrame)
	test.ExpectEquality(t, c.Current, 0x018c40)
	test.ExpectEquality(t, c.Flags, 0)

	// IO area
	c = mem.Cursor(memory.IdxKeyboard)
	test.ExpectEquality(t, c.Current, 0x03c000)
	test.ExpectEquality(t, c.Limit, 0x03c040)
	c = mem.Cursor(memory.IdxUSBStatus)
	test.ExpectEquality(t, c.Current, 0x03c040)
	test.ExpectEquality(t, c.Flags, 0)

	// system control bytes
	test.ExpectEquality(t, mem.Cursor(memory.IdxClockControl).Current, 0x001800)
	test.ExpectEquality(t, mem.Cursor(memory.IdxResetControl).Current, 0x001810)
	test.ExpectEquality(t, mem.Cursor(memory.IdxIRQMaskLow).Current, 0x001830)
	test.ExpectEquality(t, mem.Cursor(memory.IdxIRQMaskHigh).Current, 0x001831)

	// user cursors
	c = mem.Cursor(memory.IdxUserStart)
	test.ExpectEquality(t, c.Current, 0x013800)
	test.ExpectEquality(t, c.Flags, cursor.AutoStep)
	c = mem.Cursor(0xff)
	test.ExpectEquality(t, c.Current, 0x013800)

	// unassigned cursors are zeroed
	test.ExpectEquality(t, mem.Cursor(1), cursor.Cursor{})
	test.ExpectEquality(t, mem.Cursor(82), cursor.Cursor{})
	test.ExpectEquality(t, mem.Cursor(127), cursor.Cursor{})
}

func TestReadWrite(t *testing.T) {
	mem, sts, _ := newMemory()

	// user cursor walks forward on both reads and writes
	mem.Write(128, 0xab)
	mem.Write(128, 0xbb)
	mem.Write(128, 0xcc)

	c := mem.Cursor(128)
	test.ExpectEquality(t, c.Current, 0x013803)

	mem.Command(128, memory.CmdResetIndex)
	test.ExpectEquality(t, mem.Read(128), 0xab)
	test.ExpectEquality(t, mem.Read(128), 0xbb)
	test.ExpectEquality(t, mem.Read(128), 0xcc)

	test.ExpectEquality(t, sts.Test(status.MemoryError), false)
}

func TestReadWriteNoStep(t *testing.T) {
	mem, _, _ := newMemory()

	mem.SetCursor(130, cursor.Cursor{
		Current: 0x013900,
		Default: 0x013900,
		Step:    1,
	})

	// without AutoStep the cursor holds still
	mem.Write(130, 0x5a)
	test.ExpectEquality(t, mem.Read(130), 0x5a)
	test.ExpectEquality(t, mem.Cursor(130).Current, 0x013900)
}

func TestSpeculativeRead(t *testing.T) {
	mem, _, _ := newMemory()

	mem.Write(128, 0x11)
	mem.Write(128, 0x22)
	mem.Command(128, memory.CmdResetIndex)

	// a read left unsettled does not move the cursor
	data, ok := mem.ReadCursor(128)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, data, 0x11)
	test.ExpectEquality(t, mem.Cursor(128).Current, 0x013800)

	// settling the read steps the cursor
	mem.StepCursor(128)
	test.ExpectEquality(t, mem.Cursor(128).Current, 0x013801)

	data, _ = mem.ReadCursor(128)
	test.ExpectEquality(t, data, 0x22)
}

func TestAccessFault(t *testing.T) {
	mem, sts, irqc := newMemory()

	mem.SetCursor(133, cursor.Cursor{
		Current: 0x080000,
		Flags:   cursor.AutoStep,
		Step:    1,
	})

	// reads return zero, the error latches, the cursor holds still
	test.ExpectEquality(t, mem.Read(133), 0x00)
	test.ExpectEquality(t, sts.Test(status.MemoryError), true)
	test.ExpectEquality(t, sts.Test(status.IndexOverflow), true)
	test.ExpectEquality(t, irqc.CauseLow()&0x01, 0x01)
	test.ExpectEquality(t, irqc.CauseLow()&0x02, 0x02)
	test.ExpectEquality(t, mem.Cursor(133).Current, 0x080000)

	// writes are discarded
	mem.Write(133, 0xff)
	test.ExpectEquality(t, mem.Cursor(133).Current, 0x080000)

	// the speculative path reports the fault to its caller
	_, ok := mem.ReadCursor(133)
	test.ExpectEquality(t, ok, false)

	// the boundary is exactly the arena size
	mem.SetCursor(134, cursor.Cursor{Current: 0x03ffff})
	_, ok = mem.ReadCursor(134)
	test.ExpectEquality(t, ok, true)
	mem.SetCursor(134, cursor.Cursor{Current: 0x040000})
	_, ok = mem.ReadCursor(134)
	test.ExpectEquality(t, ok, false)
}

func TestWindowCommands(t *testing.T) {
	mem, _, _ := newMemory()

	mem.SetCursor(140, cursor.Cursor{
		Current: 0x013a00,
		Default: 0x013800,
		Limit:   0x013b00,
	})

	mem.Command(140, memory.CmdSetDefaultToAddr)
	test.ExpectEquality(t, mem.Cursor(140).Default, 0x013a00)

	mem.Command(140, memory.CmdSetLimitToAddr)
	test.ExpectEquality(t, mem.Cursor(140).Limit, 0x013a00)

	mem.SetCursor(140, cursor.Cursor{Current: 0x013a00, Default: 0x013800})
	mem.Command(140, memory.CmdResetIndex)
	test.ExpectEquality(t, mem.Cursor(140).Current, 0x013800)

	// unknown opcodes are no-ops
	before := mem.Cursor(140)
	mem.Command(140, 0x7f)
	test.ExpectEquality(t, mem.Cursor(140), before)
}

func TestFieldAccess(t *testing.T) {
	mem, _, _ := newMemory()

	// byte-granular programming of a cursor address
	mem.SetField(200, cursor.FldCurrentLow, 0x00)
	mem.SetField(200, cursor.FldCurrentMid, 0x40)
	mem.SetField(200, cursor.FldCurrentHigh, 0x01)
	test.ExpectEquality(t, mem.Cursor(200).Current, 0x014000)

	test.ExpectEquality(t, mem.Field(200, cursor.FldCurrentMid), 0x40)

	// DMA selectors route to the shared record regardless of cursor
	mem.SetField(200, cursor.FldDMASource, 128)
	mem.SetField(201, cursor.FldDMATarget, 129)
	mem.SetField(202, cursor.FldDMACountLow, 0x34)
	mem.SetField(203, cursor.FldDMACountHigh, 0x12)

	cfg := mem.CopyConfig()
	test.ExpectEquality(t, cfg.Src, 128)
	test.ExpectEquality(t, cfg.Dst, 129)
	test.ExpectEquality(t, cfg.Count, 0x1234)

	test.ExpectEquality(t, mem.Field(0, cursor.FldDMASource), 128)
	test.ExpectEquality(t, mem.Field(0, cursor.FldDMACountHigh), 0x12)

	// programming the shared record leaves the cursors untouched
	test.ExpectEquality(t, mem.Cursor(201), cursor.Cursor{})

	// out of range selectors read zero and ignore writes
	test.ExpectEquality(t, mem.Field(200, cursor.NumFields), 0x00)
	before := mem.Cursor(200)
	mem.SetField(200, cursor.NumFields, 0xff)
	test.ExpectEquality(t, mem.Cursor(200), before)
}

func TestResetAll(t *testing.T) {
	mem, _, _ := newMemory()

	mem.Write(128, 0x01)
	mem.Write(129, 0x02)
	test.ExpectEquality(t, mem.Cursor(128).Current, 0x013801)
	test.ExpectEquality(t, mem.Cursor(129).Current, 0x013801)

	mem.ResetAll()
	test.ExpectEquality(t, mem.Cursor(128).Current, 0x013800)
	test.ExpectEquality(t, mem.Cursor(129).Current, 0x013800)
}

func TestFactoryReset(t *testing.T) {
	mem, sts, _ := newMemory()

	mem.Write(128, 0xde)
	mem.SetCursor(5, cursor.Cursor{Current: 0x100})
	mem.SetField(0, cursor.FldDMASource, 99)

	// latch an error condition
	mem.SetCursor(6, cursor.Cursor{Current: 0x080000})
	mem.Read(6)
	test.ExpectEquality(t, sts.Test(status.MemoryError), true)

	mem.FactoryReset()

	test.ExpectEquality(t, mem.Cursor(5), cursor.Cursor{})
	test.ExpectEquality(t, mem.Cursor(128).Current, 0x013800)
	test.ExpectEquality(t, mem.Arena.Read(0x013800), 0x00)
	test.ExpectEquality(t, mem.CopyConfig().Src, 0)

	// status returns to bare ready
	test.ExpectEquality(t, sts.Value(), status.Ready)
}

func TestCopyAddresses(t *testing.T) {
	mem, _, _ := newMemory()

	mem.SetCursor(128, cursor.Cursor{Current: 0x013a00})
	mem.SetCursor(129, cursor.Cursor{Current: 0x013b00})

	src, dst := mem.CopyAddresses(icq.Command{Src: 128, Dst: 129, Count: 10})
	test.ExpectEquality(t, src, 0x013a00)
	test.ExpectEquality(t, dst, 0x013b00)
}
