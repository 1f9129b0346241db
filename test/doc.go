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

// Package test contains helper functions that remove common testing
// boilerplate.
//
// The Expect functions test a value against a condition appropriate to its
// type and mark the test as having failed if the condition is not met. The
// Demand functions are the same except that failure is fatal to the test.
//
// How the success oriented functions handle the nil type is worth spelling
// out. A nil value is considered a success, causing ExpectSuccess to succeed
// and ExpectFailure to fail. This is a consequence of how errors usually
// work (nil indicating no error) and the intepretation we *need* as a
// result.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output for comparison against predefined strings.
package test
