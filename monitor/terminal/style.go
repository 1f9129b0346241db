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

package terminal

// Style is used to identify the category of text being sent to the
// Terminal.TermPrintLine() function.
type Style int

// List of terminal styles.
const (
	// input from the user being echoed back after normalisation. terminals
	// with a visible input line have no need to print anything for this
	// style but it is required, for example, when recording a script.
	StyleEcho Style = iota

	// terminal prompt
	StylePrompt

	// help information
	StyleHelp

	// non-error responses to commands
	StyleFeedback

	// register, cursor and memory values
	StyleRegister

	// log entries echoed to the terminal
	StyleLog

	// error messages
	StyleError
)

// IsPrompt returns true if Style is a prompt style, meaning that a newline
// should not follow the printed text.
func (sty Style) IsPrompt() bool {
	return sty == StylePrompt
}

// IncludeInScriptOutput returns true if a line of this Style should be
// recorded by the script scribe. Echoed input and prompts are excluded. the
// scribe already records the input line and prompts are not output at all.
func (sty Style) IncludeInScriptOutput() bool {
	return sty != StyleEcho && sty != StylePrompt
}
