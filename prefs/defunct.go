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

package prefs

import "slices"

// list of preference keys that are no longer used. entries found in a prefs
// file under one of these keys are dropped on the next save.
var defunct = []string{
	"mia.randstate",
	"hardware.dmapace",
}

// returns true if string is in list of defunct keys.
func isDefunct(s string) bool {
	return slices.Contains(defunct, s)
}
