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

package clock

import (
	"sync"
	"time"
)

// MinAssertTime is how long the reset line is held before Process releases
// it of its own accord. Callers wanting a shorter hold release explicitly.
const MinAssertTime = 10 * time.Millisecond

// ResetLine drives the host reset output. The pin is active-low; asserted
// means the host is being held in reset.
//
// The line works in the adapter's virtual time. Callers supply the current
// elapsed time, normally from Generator.Elapsed().
type ResetLine struct {
	crit sync.Mutex

	asserted   bool
	assertedAt time.Duration
}

// Assert pulls the reset line low, holding the host in reset.
func (l *ResetLine) Assert(now time.Duration) {
	l.crit.Lock()
	defer l.crit.Unlock()

	l.asserted = true
	l.assertedAt = now
}

// Release returns the reset line high, letting the host run.
func (l *ResetLine) Release() {
	l.crit.Lock()
	defer l.crit.Unlock()

	l.asserted = false
}

// Asserted returns true if the host is being held in reset.
func (l *ResetLine) Asserted() bool {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.asserted
}

// HeldFor returns how long the line has been asserted. Zero if the line is
// not asserted.
func (l *ResetLine) HeldFor(now time.Duration) time.Duration {
	l.crit.Lock()
	defer l.crit.Unlock()

	if !l.asserted {
		return 0
	}
	return now - l.assertedAt
}

// Process releases the line automatically once it has been held for
// MinAssertTime. Called from the service loop.
func (l *ResetLine) Process(now time.Duration) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if l.asserted && now-l.assertedAt >= MinAssertTime {
		l.asserted = false
	}
}
