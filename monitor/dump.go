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
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/softlatch/mia/monitor/terminal"
	"github.com/softlatch/mia/resources"
)

// cmdDump writes a graph of the live machine structure to a graphviz file
// in the working directory. render it with dot:
//
//	dot -Tsvg machine_main_20060102_150405.dot -o machine.svg
func cmdDump(mon *Monitor, _ []string) error {
	fn := fmt.Sprintf("%s.dot", resources.UniqueFilename("machine", string(mon.mia.Env.Label)))

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, mon.mia)

	mon.printLine(terminal.StyleFeedback, "machine graph written to %s", fn)
	return nil
}
