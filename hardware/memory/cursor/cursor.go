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

package cursor

import (
	"fmt"
	"strings"
)

// Mask limits cursor addresses to 24 bits. Stepped addresses are computed in
// 32-bit space and reduced to 24 bits only when written back to the Current
// field.
const Mask = 0xffffff

// NumCursors is the number of cursors in the indexed memory engine.
const NumCursors = 256

// Values for the Flags field.
const (
	AutoStep    = 0x01 // advance Current after every data access
	Direction   = 0x02 // clear is forward, set is backward
	WrapOnLimit = 0x04 // stepping past Limit returns to Default
)

// Config field selectors, as written to CFG_FIELD_SELECT. Fields DMASource
// and above address the shared DMA configuration record rather than the
// cursor named by the window.
const (
	FldCurrentLow = iota
	FldCurrentMid
	FldCurrentHigh
	FldDefaultLow
	FldDefaultMid
	FldDefaultHigh
	FldLimitLow
	FldLimitMid
	FldLimitHigh
	FldStep
	FldFlags
	FldDMASource
	FldDMATarget
	FldDMACountLow
	FldDMACountHigh
	NumFields
)

// Cursor is one programmable pointer into the arena. Current, Default and
// Limit are 24-bit offsets. Values beyond the arena are accepted here and
// rejected at access time by the engine.
type Cursor struct {
	Current uint32
	Default uint32
	Limit   uint32
	Step    uint8
	Flags   uint8
}

// Reset returns the cursor to its default address.
func (c *Cursor) Reset() {
	c.Current = c.Default
}

// Advance moves Current one step in the direction given by the flags. The
// caller is responsible for checking the AutoStep flag; Advance itself always
// steps.
//
// The stepped address is computed in 32-bit space. Stepping backward past
// zero counts as passing the limit. Without WrapOnLimit the stepped address
// is reduced to 24 bits and may point beyond the arena, which is not an error
// until the next access.
func (c *Cursor) Advance() {
	s := uint32(c.Step)
	a := c.Current

	if c.Flags&Direction == Direction {
		n := a - s
		if c.Flags&WrapOnLimit == WrapOnLimit && (n < c.Limit || n > a) {
			n = c.Default
		}
		c.Current = n & Mask
		return
	}

	n := a + s
	if c.Flags&WrapOnLimit == WrapOnLimit && n >= c.Limit {
		n = c.Default
	}
	c.Current = n & Mask
}

// Field returns the byte-granular view of the cursor field given by the
// selector. Selectors for the shared DMA record and selectors outside the
// valid range return zero.
func (c *Cursor) Field(fld uint8) uint8 {
	switch fld {
	case FldCurrentLow:
		return uint8(c.Current)
	case FldCurrentMid:
		return uint8(c.Current >> 8)
	case FldCurrentHigh:
		return uint8(c.Current >> 16)
	case FldDefaultLow:
		return uint8(c.Default)
	case FldDefaultMid:
		return uint8(c.Default >> 8)
	case FldDefaultHigh:
		return uint8(c.Default >> 16)
	case FldLimitLow:
		return uint8(c.Limit)
	case FldLimitMid:
		return uint8(c.Limit >> 8)
	case FldLimitHigh:
		return uint8(c.Limit >> 16)
	case FldStep:
		return c.Step
	case FldFlags:
		return c.Flags
	}
	return 0
}

// SetField merges one byte into the cursor field given by the selector.
// Selectors for the shared DMA record and selectors outside the valid range
// are ignored.
func (c *Cursor) SetField(fld uint8, data uint8) {
	switch fld {
	case FldCurrentLow:
		c.Current = (c.Current & 0xffff00) | uint32(data)
	case FldCurrentMid:
		c.Current = (c.Current & 0xff00ff) | (uint32(data) << 8)
	case FldCurrentHigh:
		c.Current = (c.Current & 0x00ffff) | (uint32(data) << 16)
	case FldDefaultLow:
		c.Default = (c.Default & 0xffff00) | uint32(data)
	case FldDefaultMid:
		c.Default = (c.Default & 0xff00ff) | (uint32(data) << 8)
	case FldDefaultHigh:
		c.Default = (c.Default & 0x00ffff) | (uint32(data) << 16)
	case FldLimitLow:
		c.Limit = (c.Limit & 0xffff00) | uint32(data)
	case FldLimitMid:
		c.Limit = (c.Limit & 0xff00ff) | (uint32(data) << 8)
	case FldLimitHigh:
		c.Limit = (c.Limit & 0x00ffff) | (uint32(data) << 16)
	case FldStep:
		c.Step = data
	case FldFlags:
		c.Flags = data
	}
}

func (c Cursor) String() string {
	return fmt.Sprintf("cur=%#08x def=%#08x lim=%#08x step=%#04x flags=%s",
		c.Current, c.Default, c.Limit, c.Step, flagsString(c.Flags))
}

func flagsString(flags uint8) string {
	if flags == 0 {
		return "none"
	}

	s := strings.Builder{}
	if flags&AutoStep == AutoStep {
		s.WriteString("AUTO_STEP")
	}
	if flags&Direction == Direction {
		if s.Len() > 0 {
			s.WriteString("|")
		}
		s.WriteString("BACKWARD")
	}
	if flags&WrapOnLimit == WrapOnLimit {
		if s.Len() > 0 {
			s.WriteString("|")
		}
		s.WriteString("WRAP_ON_LIMIT")
	}
	if flags&^(AutoStep|Direction|WrapOnLimit) != 0 {
		if s.Len() > 0 {
			s.WriteString("|")
		}
		s.WriteString(fmt.Sprintf("%#02x", flags&^(AutoStep|Direction|WrapOnLimit)))
	}
	return s.String()
}
