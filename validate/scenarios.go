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

package validate

import (
	"fmt"
	"time"

	"github.com/softlatch/mia/hardware/bus"
	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/memory"
	"github.com/softlatch/mia/hardware/memory/cursor"
	"github.com/softlatch/mia/hardware/regmap"
	"github.com/softlatch/mia/hardware/status"
)

// how long to wait for an asynchronous copy to complete before declaring the
// scenario failed. generous because a poll over a bench link can take
// milliseconds.
const completionPatience = 5 * time.Second

type scenario struct {
	name string
	run  func(*session) error
}

var scenarios = []scenario{
	{"round-trip user index", scenarioRoundTrip},
	{"wrap-on-limit circular buffer", scenarioWrapOnLimit},
	{"block copy preserves cursors", scenarioCopyPreservesCursors},
	{"irq mask gating", scenarioIRQMaskGating},
	{"memory error on invalid address", scenarioMemoryError},
	{"alternating read/write", scenarioAlternating},
	{"pattern soak", scenarioPatternSoak},
}

// three bytes in, reset, three bytes out.
func scenarioRoundTrip(s *session) error {
	if err := s.factoryReset(); err != nil {
		return err
	}

	if err := s.poke(s.window(0, regmap.IdxSelect), 128); err != nil {
		return err
	}

	for _, d := range []uint8{0xab, 0xbb, 0xcc} {
		if err := s.poke(s.window(0, regmap.DataPort), d); err != nil {
			return err
		}
	}
	if err := s.poke(s.window(0, regmap.Command), memory.CmdResetIndex); err != nil {
		return err
	}

	for i, d := range []uint8{0xab, 0xbb, 0xcc} {
		if err := s.expect(s.window(0, regmap.DataPort), d); err != nil {
			return fmt.Errorf("read %d: %w", i, err)
		}
	}

	return nil
}

// a 16-byte circular buffer written with more data than it can hold.
func scenarioWrapOnLimit(s *session) error {
	if err := s.factoryReset(); err != nil {
		return err
	}

	if err := s.poke(s.window(0, regmap.IdxSelect), 128); err != nil {
		return err
	}
	if err := s.setTriple(0, cursor.FldLimitLow, memory.OriginUser+16); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldFlags, cursor.AutoStep|cursor.WrapOnLimit); err != nil {
		return err
	}

	for i := range 20 {
		if err := s.poke(s.window(0, regmap.DataPort), uint8(i)); err != nil {
			return err
		}
	}
	if err := s.poke(s.window(0, regmap.Command), memory.CmdResetIndex); err != nil {
		return err
	}

	// the last four writes wrapped around and overwrote the first four bytes
	expected := []uint8{0x10, 0x11, 0x12, 0x13}
	for i := uint8(0x04); i <= 0x0f; i++ {
		expected = append(expected, i)
	}

	for i, d := range expected {
		if err := s.expect(s.window(0, regmap.DataPort), d); err != nil {
			return fmt.Errorf("read %d: %w", i, err)
		}
	}

	return nil
}

// a block copy between two user cursors leaves both cursors where they were.
func scenarioCopyPreservesCursors(s *session) error {
	if err := s.factoryReset(); err != nil {
		return err
	}

	// source cursor fills its region with ten known bytes
	if err := s.poke(s.window(0, regmap.IdxSelect), 128); err != nil {
		return err
	}
	if err := s.setTriple(0, cursor.FldCurrentLow, 0x13a00); err != nil {
		return err
	}
	if err := s.setTriple(0, cursor.FldDefaultLow, 0x13a00); err != nil {
		return err
	}
	for i := range 10 {
		if err := s.poke(s.window(0, regmap.DataPort), uint8(0x10+i)); err != nil {
			return err
		}
	}
	if err := s.poke(s.window(0, regmap.Command), memory.CmdResetIndex); err != nil {
		return err
	}

	// target cursor
	if err := s.poke(s.window(0, regmap.IdxSelect), 129); err != nil {
		return err
	}
	if err := s.setTriple(0, cursor.FldCurrentLow, 0x13b00); err != nil {
		return err
	}
	if err := s.setTriple(0, cursor.FldDefaultLow, 0x13b00); err != nil {
		return err
	}

	// program the copy and go
	if err := s.setField(0, cursor.FldDMASource, 128); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldDMATarget, 129); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldDMACountLow, 10); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldDMACountHigh, 0); err != nil {
		return err
	}
	if err := s.poke(regmap.SharedCommand, bus.CmdCopyBlock); err != nil {
		return err
	}
	if err := s.awaitCause(irq.DMAComplete, completionPatience); err != nil {
		return err
	}

	// neither cursor has moved
	if err := s.poke(s.window(0, regmap.IdxSelect), 128); err != nil {
		return err
	}
	v, err := s.getTriple(0, cursor.FldCurrentLow)
	if err != nil {
		return err
	}
	if v != 0x13a00 {
		return fmt.Errorf("source cursor moved to %#06x during copy", v)
	}

	if err := s.poke(s.window(0, regmap.IdxSelect), 129); err != nil {
		return err
	}
	v, err = s.getTriple(0, cursor.FldCurrentLow)
	if err != nil {
		return err
	}
	if v != 0x13b00 {
		return fmt.Errorf("target cursor moved to %#06x during copy", v)
	}

	// the copied bytes read back through the target cursor
	for i := range 10 {
		if err := s.expect(s.window(0, regmap.DataPort), uint8(0x10+i)); err != nil {
			return fmt.Errorf("read %d: %w", i, err)
		}
	}

	// writing one to the completion bit clears the cause and the pending flag
	if err := s.poke(regmap.IRQCauseLow, irq.DMAComplete); err != nil {
		return err
	}
	if err := s.expect(regmap.IRQCauseLow, 0); err != nil {
		return err
	}
	return s.expectClear(regmap.DeviceStatus, status.IRQPending)
}

// a masked cause latches without flagging a pending interrupt; opening the
// mask reveals it.
func scenarioIRQMaskGating(s *session) error {
	if err := s.factoryReset(); err != nil {
		return err
	}

	// gate off reporting of the copy-complete cause
	if err := s.poke(regmap.IRQMaskLow, 0xff&^irq.DMAComplete); err != nil {
		return err
	}

	// raise DMA_COMPLETE by running a minimal copy
	if err := s.setField(0, cursor.FldDMASource, 128); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldDMATarget, 129); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldDMACountLow, 1); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldDMACountHigh, 0); err != nil {
		return err
	}
	if err := s.poke(regmap.SharedCommand, bus.CmdCopyBlock); err != nil {
		return err
	}
	if err := s.awaitCause(irq.DMAComplete, completionPatience); err != nil {
		return err
	}

	// cause is latched but the pending flag is gated off
	if err := s.expectClear(regmap.DeviceStatus, status.IRQPending); err != nil {
		return err
	}

	// opening the mask reveals the pending interrupt
	if err := s.poke(regmap.IRQMaskLow, 0xff); err != nil {
		return err
	}
	return s.expectSet(regmap.DeviceStatus, status.IRQPending)
}

// an access through a cursor pointing outside the arena returns zero and
// latches the error condition; a factory reset recovers.
func scenarioMemoryError(s *session) error {
	if err := s.factoryReset(); err != nil {
		return err
	}

	if err := s.poke(s.window(3, regmap.IdxSelect), 133); err != nil {
		return err
	}
	if err := s.setField(3, cursor.FldCurrentHigh, 0x08); err != nil {
		return err
	}

	if err := s.expect(s.window(3, regmap.DataPort), 0); err != nil {
		return err
	}
	if err := s.expectSet(regmap.DeviceStatus, status.MemoryError|status.IRQPending); err != nil {
		return err
	}
	if err := s.expectSet(regmap.IRQCauseLow, irq.MemoryError|irq.IndexOverflow); err != nil {
		return err
	}

	// the faulted access has not moved the cursor
	v, err := s.getTriple(3, cursor.FldCurrentLow)
	if err != nil {
		return err
	}
	if v != 0x083800 {
		return fmt.Errorf("cursor moved to %#06x by the faulted access", v)
	}

	if err := s.factoryReset(); err != nil {
		return err
	}
	if err := s.expect(regmap.DeviceStatus, status.Ready); err != nil {
		return err
	}
	return s.expect(regmap.IRQCauseLow, 0)
}

// every write is observable at the next read, over a long alternating
// sequence at a stationary cursor.
func scenarioAlternating(s *session) error {
	if err := s.factoryReset(); err != nil {
		return err
	}

	if err := s.poke(s.window(0, regmap.IdxSelect), 128); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldFlags, 0); err != nil {
		return err
	}

	for i := range 1000 {
		if err := s.poke(s.window(0, regmap.DataPort), uint8(i)); err != nil {
			return err
		}
		if err := s.expect(s.window(0, regmap.DataPort), uint8(i)); err != nil {
			return fmt.Errorf("cycle %d: %w", i, err)
		}
	}

	return nil
}

// classic bench patterns: address-as-data over a wrapping page, then walking
// ones at a stationary address.
func scenarioPatternSoak(s *session) error {
	if err := s.factoryReset(); err != nil {
		return err
	}

	if err := s.poke(s.window(0, regmap.IdxSelect), 128); err != nil {
		return err
	}
	if err := s.setTriple(0, cursor.FldLimitLow, memory.OriginUser+0x100); err != nil {
		return err
	}
	if err := s.setField(0, cursor.FldFlags, cursor.AutoStep|cursor.WrapOnLimit); err != nil {
		return err
	}

	for i := range 256 {
		if err := s.poke(s.window(0, regmap.DataPort), uint8(i)); err != nil {
			return err
		}
	}
	if err := s.poke(s.window(0, regmap.Command), memory.CmdResetIndex); err != nil {
		return err
	}
	for i := range 256 {
		if err := s.expect(s.window(0, regmap.DataPort), uint8(i)); err != nil {
			return fmt.Errorf("read %d: %w", i, err)
		}
	}

	if err := s.setField(0, cursor.FldFlags, 0); err != nil {
		return err
	}
	for bit := range 8 {
		if err := s.poke(s.window(0, regmap.DataPort), uint8(1<<bit)); err != nil {
			return err
		}
		if err := s.expect(s.window(0, regmap.DataPort), uint8(1<<bit)); err != nil {
			return fmt.Errorf("bit %d: %w", bit, err)
		}
	}

	return nil
}
