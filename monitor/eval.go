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
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/softlatch/mia/hardware/memory"
	"github.com/softlatch/mia/hardware/memory/arena"
	"github.com/softlatch/mia/hardware/regmap"
)

// the monitor evaluates numeric command arguments with a starlark
// interpreter. plain integer literals short-circuit to the integer parser
// but anything else gets the full expression language, with the register
// map and a handful of live machine values predeclared.

// symbols returns the predeclared names available to an expression.
func (mon *Monitor) symbols() starlark.StringDict {
	pred := starlark.StringDict{}

	for sym, addr := range regmap.Symbols() {
		pred[sym] = starlark.MakeInt(int(addr))
	}

	// arena landmarks
	pred["ARENA_SIZE"] = starlark.MakeInt(arena.Size)
	pred["ORIGIN_INDEX_TABLE"] = starlark.MakeInt(memory.OriginIndexTable)
	pred["ORIGIN_SYSTEM"] = starlark.MakeInt(memory.OriginSystem)
	pred["ORIGIN_VIDEO"] = starlark.MakeInt(memory.OriginVideo)
	pred["ORIGIN_USER"] = starlark.MakeInt(memory.OriginUser)
	pred["ORIGIN_IO"] = starlark.MakeInt(memory.OriginIO)
	pred["IDX_USER_START"] = starlark.MakeInt(memory.IdxUserStart)

	// live machine values, sampled at the point of evaluation
	pred["CYCLES"] = starlark.MakeUint64(mon.mia.Clk.Cycles())
	pred["STATUS"] = starlark.MakeInt(int(mon.mia.Status.Value()))
	pred["CAUSE"] = starlark.MakeInt(int(mon.mia.IRQ.CauseLow()) | int(mon.mia.IRQ.CauseHigh())<<8)
	pred["WINDOW"] = starlark.MakeInt(mon.window)

	return pred
}

// evaluate resolves an expression to an integer.
func (mon *Monitor) evaluate(expr string) (int64, error) {
	// integer literals are the overwhelmingly common case
	if v, err := strconv.ParseInt(expr, 0, 64); err == nil {
		return v, nil
	}

	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expression", prog, mon.symbols())
	if err != nil {
		return 0, fmt.Errorf("cannot evaluate %s", expr)
	}

	rc, ok := dict["rc"]
	if !ok {
		return 0, fmt.Errorf("cannot evaluate %s", expr)
	}
	i, ok := rc.(starlark.Int)
	if !ok {
		return 0, fmt.Errorf("%s is not a number", expr)
	}
	v, ok := i.Int64()
	if !ok {
		return 0, fmt.Errorf("%s is out of range", expr)
	}

	return v, nil
}
