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

package irq_test

import (
	"testing"

	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/status"
	"github.com/softlatch/mia/test"
)

// line implements irq.Line and records the most recent assertion
type line struct {
	asserted bool
}

func (l *line) SetInterrupt(assert bool) {
	l.asserted = assert
}

func TestPowerOnState(t *testing.T) {
	var sts status.Register
	var l line

	c := irq.NewController(&sts, &l)

	// all causes unmasked and enabled but nothing pending
	test.ExpectEquality(t, c.CauseLow(), 0x00)
	test.ExpectEquality(t, c.CauseHigh(), 0x00)
	test.ExpectEquality(t, c.MaskLow(), 0xff)
	test.ExpectEquality(t, c.MaskHigh(), 0xff)
	test.ExpectEquality(t, c.Enabled(), 1)
	test.ExpectEquality(t, c.Pending(), false)
	test.ExpectEquality(t, sts.Test(status.IRQPending), false)
	test.ExpectEquality(t, l.asserted, false)
}

func TestRaiseAndAcknowledge(t *testing.T) {
	var sts status.Register
	var l line

	c := irq.NewController(&sts, &l)

	c.Raise(irq.MemoryError)
	test.ExpectEquality(t, c.CauseLow(), 0x01)
	test.ExpectEquality(t, c.Pending(), true)
	test.ExpectEquality(t, sts.Test(status.IRQPending), true)
	test.ExpectEquality(t, l.asserted, true)

	c.Raise(irq.VideoFrameComplete)
	test.ExpectEquality(t, c.CauseHigh(), 0x01)

	// writing a one clears only the addressed bit
	c.ClearLow(0x01)
	test.ExpectEquality(t, c.CauseLow(), 0x00)
	test.ExpectEquality(t, c.CauseHigh(), 0x01)
	test.ExpectEquality(t, c.Pending(), true)

	c.ClearHigh(0x01)
	test.ExpectEquality(t, c.Pending(), false)
	test.ExpectEquality(t, sts.Test(status.IRQPending), false)
	test.ExpectEquality(t, l.asserted, false)
}

// the gating scenario: a masked cause stays latched and fires when unmasked
func TestMaskGating(t *testing.T) {
	var sts status.Register
	var l line

	c := irq.NewController(&sts, &l)

	c.SetMaskLow(0xfb)
	c.Raise(irq.DMAComplete)

	test.ExpectEquality(t, c.CauseLow(), 0x04)
	test.ExpectEquality(t, c.Pending(), false)
	test.ExpectEquality(t, sts.Test(status.IRQPending), false)

	c.SetMaskLow(0xff)
	test.ExpectEquality(t, c.Pending(), true)
	test.ExpectEquality(t, sts.Test(status.IRQPending), true)
	test.ExpectEquality(t, l.asserted, true)
}

func TestEnable(t *testing.T) {
	var sts status.Register
	var l line

	c := irq.NewController(&sts, &l)

	c.Raise(irq.USBKeyboard)
	test.ExpectEquality(t, c.Pending(), true)

	c.SetEnable(0)
	test.ExpectEquality(t, c.Pending(), false)
	test.ExpectEquality(t, l.asserted, false)

	// any non-zero write enables
	c.SetEnable(0x40)
	test.ExpectEquality(t, c.Enabled(), 1)
	test.ExpectEquality(t, c.Pending(), true)
}

func TestClearAll(t *testing.T) {
	var sts status.Register
	var l line

	c := irq.NewController(&sts, &l)

	c.Raise(irq.MemoryError | irq.DMAError | irq.VideoCollision)
	test.ExpectEquality(t, c.Pending(), true)

	c.ClearAll()
	test.ExpectEquality(t, c.CauseLow(), 0x00)
	test.ExpectEquality(t, c.CauseHigh(), 0x00)
	test.ExpectEquality(t, c.Pending(), false)
	test.ExpectEquality(t, l.asserted, false)

	// the mask and enable are not affected by a cause clear
	test.ExpectEquality(t, c.MaskLow(), 0xff)
	test.ExpectEquality(t, c.Enabled(), 1)
}

func TestString(t *testing.T) {
	var sts status.Register

	c := irq.NewController(&sts, nil)
	c.Raise(irq.DMAComplete)
	test.ExpectEquality(t, c.String(), "cause=0x0004 mask=0xffff enable=true")
}
