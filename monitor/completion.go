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
	"sort"
	"strings"
)

// tabCompletion completes command keywords. completion is limited to the
// first word of the input line.
//
// the implementation is self resetting. a terminal is not required to call
// Reset() between lines; a previous guess is only extended when the input
// is exactly the string returned by the last Complete().
type tabCompletion struct {
	options []string

	matches   []string
	match     int
	lastGuess string
}

func newTabCompletion() *tabCompletion {
	tc := &tabCompletion{}
	for _, c := range commands {
		tc.options = append(tc.options, c.name)
	}
	sort.Strings(tc.options)
	return tc
}

// Complete implements the terminal.TabCompletion interface.
func (tc *tabCompletion) Complete(input string) string {
	if len(tc.matches) > 0 && input == tc.lastGuess {
		// the user is cycling through the matches from the last completion
		tc.match = (tc.match + 1) % len(tc.matches)
		tc.lastGuess = tc.matches[tc.match] + " "
		return tc.lastGuess
	}

	tc.Reset()

	stub := strings.TrimLeft(input, " ")
	if strings.Contains(stub, " ") {
		// only the command keyword is completed
		return input
	}

	keyword := strings.ToUpper(stub)
	for _, opt := range tc.options {
		if strings.HasPrefix(opt, keyword) {
			tc.matches = append(tc.matches, opt)
		}
	}
	if len(tc.matches) == 0 {
		return input
	}

	tc.lastGuess = tc.matches[0] + " "
	return tc.lastGuess
}

// Reset implements the terminal.TabCompletion interface.
func (tc *tabCompletion) Reset() {
	tc.matches = tc.matches[:0]
	tc.match = 0
	tc.lastGuess = ""
}
