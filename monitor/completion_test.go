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

package monitor

import (
	"testing"

	"github.com/softlatch/mia/test"
)

func TestCompletion(t *testing.T) {
	tc := newTabCompletion()

	// no match leaves the input alone
	test.ExpectEquality(t, tc.Complete("z"), "z")

	// a unique prefix completes the keyword and adds a separating space
	test.ExpectEquality(t, tc.Complete("bo"), "BOOT ")

	// only the command keyword is completed
	test.ExpectEquality(t, tc.Complete("PEEK 0x"), "PEEK 0x")

	// an ambiguous prefix offers the matches in turn, wrapping around at the
	// end of the list
	test.ExpectEquality(t, tc.Complete("P"), "PEEK ")
	test.ExpectEquality(t, tc.Complete("PEEK "), "POKE ")
	test.ExpectEquality(t, tc.Complete("POKE "), "PREFS ")
	test.ExpectEquality(t, tc.Complete("PREFS "), "PEEK ")

	// editing the line rather than completing again starts a new match
	test.ExpectEquality(t, tc.Complete("PO"), "POKE ")

	// an explicit reset forgets the match state
	tc.Reset()
	test.ExpectEquality(t, tc.Complete("POKE "), "POKE ")
}
