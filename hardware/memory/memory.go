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

package memory

import (
	"sync"

	"github.com/softlatch/mia/hardware/icq"
	"github.com/softlatch/mia/hardware/irq"
	"github.com/softlatch/mia/hardware/memory/arena"
	"github.com/softlatch/mia/hardware/memory/cursor"
	"github.com/softlatch/mia/hardware/status"
)

// Window-level command opcodes, written to the COMMAND register.
const (
	CmdNop              = 0x00
	CmdResetIndex       = 0x01
	CmdSetDefaultToAddr = 0x02
	CmdSetLimitToAddr   = 0x03
)

// Memory is the indexed memory engine. All host access to the arena goes
// through one of the 256 cursors.
//
// The cursor table and the DMA configuration record are guarded by a single
// lock. The bus servicing side holds it for one operation at a time; the
// service loop holds it only while snapshotting copy addresses at dispatch.
type Memory struct {
	crit sync.Mutex

	cursors [cursor.NumCursors]cursor.Cursor

	// the shared DMA configuration record, programmed through config fields
	// FldDMASource and upward of any window
	copyCfg icq.Command

	Arena *arena.Arena

	sts  *status.Register
	irqc *irq.Controller
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The cursor table is programmed with the factory defaults.
func NewMemory(a *arena.Arena, sts *status.Register, irqc *irq.Controller) *Memory {
	m := &Memory{
		Arena: a,
		sts:   sts,
		irqc:  irqc,
	}

	m.crit.Lock()
	defer m.crit.Unlock()
	m.factoryDefaults()
	m.sts.Store(status.Ready)

	return m
}

// accessFault latches the access violation condition. Must be called with
// the lock held.
func (m *Memory) accessFault() {
	m.sts.Set(status.MemoryError | status.IndexOverflow)
	m.irqc.Raise(irq.MemoryError | irq.IndexOverflow)
}

// ReadCursor reads the byte under the cursor without stepping. The returned
// boolean is false if the cursor points outside the arena, in which case the
// error condition has been latched, the data is zero and the cursor is
// untouched.
//
// A read that the caller settles as a genuine read must be followed by
// StepCursor.
func (m *Memory) ReadCursor(idx uint8) (uint8, bool) {
	m.crit.Lock()
	defer m.crit.Unlock()

	a := m.cursors[idx].Current
	if !arena.Valid(a) {
		m.accessFault()
		return 0, false
	}
	return m.Arena.Read(a), true
}

// StepCursor performs the auto-step owed by a settled read. Cursors without
// the AutoStep flag are left alone.
func (m *Memory) StepCursor(idx uint8) {
	m.crit.Lock()
	defer m.crit.Unlock()

	if m.cursors[idx].Flags&cursor.AutoStep == cursor.AutoStep {
		m.cursors[idx].Advance()
	}
}

// Read performs a full data-port read: validate, read, auto-step. Returns
// zero and latches the error condition if the cursor points outside the
// arena.
func (m *Memory) Read(idx uint8) uint8 {
	m.crit.Lock()
	defer m.crit.Unlock()

	a := m.cursors[idx].Current
	if !arena.Valid(a) {
		m.accessFault()
		return 0
	}

	data := m.Arena.Read(a)
	if m.cursors[idx].Flags&cursor.AutoStep == cursor.AutoStep {
		m.cursors[idx].Advance()
	}
	return data
}

// Write performs a full data-port write: validate, write, auto-step. The
// write is discarded and the error condition latched if the cursor points
// outside the arena.
func (m *Memory) Write(idx uint8, data uint8) {
	m.crit.Lock()
	defer m.crit.Unlock()

	a := m.cursors[idx].Current
	if !arena.Valid(a) {
		m.accessFault()
		return
	}

	m.Arena.Write(a, data)
	if m.cursors[idx].Flags&cursor.AutoStep == cursor.AutoStep {
		m.cursors[idx].Advance()
	}
}

// Field reads a configuration field of the cursor. The DMA field selectors
// read the shared DMA configuration record instead. Selectors out of range
// read zero.
func (m *Memory) Field(idx uint8, fld uint8) uint8 {
	m.crit.Lock()
	defer m.crit.Unlock()

	switch fld {
	case cursor.FldDMASource:
		return m.copyCfg.Src
	case cursor.FldDMATarget:
		return m.copyCfg.Dst
	case cursor.FldDMACountLow:
		return uint8(m.copyCfg.Count)
	case cursor.FldDMACountHigh:
		return uint8(m.copyCfg.Count >> 8)
	}
	return m.cursors[idx].Field(fld)
}

// SetField writes a configuration field of the cursor. The DMA field
// selectors write the shared DMA configuration record instead. Selectors out
// of range are ignored.
func (m *Memory) SetField(idx uint8, fld uint8, data uint8) {
	m.crit.Lock()
	defer m.crit.Unlock()

	switch fld {
	case cursor.FldDMASource:
		m.copyCfg.Src = data
	case cursor.FldDMATarget:
		m.copyCfg.Dst = data
	case cursor.FldDMACountLow:
		m.copyCfg.Count = (m.copyCfg.Count & 0xff00) | uint16(data)
	case cursor.FldDMACountHigh:
		m.copyCfg.Count = (m.copyCfg.Count & 0x00ff) | (uint16(data) << 8)
	default:
		m.cursors[idx].SetField(fld, data)
	}
}

// Command executes a window-level command against the cursor. Unknown
// opcodes are no-ops.
func (m *Memory) Command(idx uint8, opcode uint8) {
	m.crit.Lock()
	defer m.crit.Unlock()

	switch opcode {
	case CmdNop:
	case CmdResetIndex:
		m.cursors[idx].Reset()
	case CmdSetDefaultToAddr:
		m.cursors[idx].Default = m.cursors[idx].Current
	case CmdSetLimitToAddr:
		m.cursors[idx].Limit = m.cursors[idx].Current
	}
}

// ResetAll returns every cursor to its default address. Configuration is
// untouched.
func (m *Memory) ResetAll() {
	m.crit.Lock()
	defer m.crit.Unlock()

	for i := range m.cursors {
		m.cursors[i].Reset()
	}
}

// FactoryReset clears the arena and the DMA configuration record and
// reprograms the cursor table with the factory defaults. The status register
// is reset to the ready condition. IRQ state is the controller's concern and
// is not touched here.
func (m *Memory) FactoryReset() {
	m.crit.Lock()
	defer m.crit.Unlock()

	m.Arena.Reset()
	m.copyCfg = icq.Command{}
	m.factoryDefaults()
	m.sts.Store(status.Ready)
}

// CopyConfig returns the current DMA configuration record, as queued by the
// COPY_BLOCK command.
func (m *Memory) CopyConfig() icq.Command {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.copyCfg
}

// CopyAddresses snapshots the current addresses of the cursors named by a
// block-copy command. Called by the service loop at dispatch time.
func (m *Memory) CopyAddresses(cmd icq.Command) (src uint32, dst uint32) {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.cursors[cmd.Src].Current, m.cursors[cmd.Dst].Current
}

// Cursor returns a copy of the cursor record. Useful for inspection; changes
// to the copy have no effect on the engine.
func (m *Memory) Cursor(idx uint8) cursor.Cursor {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.cursors[idx]
}

// SetCursor replaces a cursor record wholesale, outside of the byte-granular
// config protocol.
func (m *Memory) SetCursor(idx uint8, c cursor.Cursor) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.cursors[idx] = c
}
