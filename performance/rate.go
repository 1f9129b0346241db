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

package performance

import "github.com/softlatch/mia/hardware/clock"

// CalcRate takes a host cycle count and a duration (in seconds) and returns
// the achieved clock rate in Hz, along with how that rate compares to the
// reference host clock, as a percentage.
func CalcRate(numCycles uint64, duration float64) (rate float64, comparison float64) {
	rate = float64(numCycles) / duration
	comparison = 100 * rate / clock.FreqNormal
	return rate, comparison
}
